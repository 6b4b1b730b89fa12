// Package prompt composes the text sent to the AI providers.
package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/khrees2412/proposly/pkg/models"
)

// Section headers, in the order they appear in a prompt
const (
	Intro                = "Generate a personalized Upwork proposal based on the following:"
	BackgroundHeader     = "FREELANCER BACKGROUND:"
	ProjectsHeader       = "RELEVANT PROJECTS:"
	PatternsHeader       = "SUCCESSFUL PROPOSAL PATTERNS (for tone/structure reference only):"
	RulesHeader          = "RULES (STRICT COMPLIANCE REQUIRED):"
	JobDescriptionHeader = "JOB DESCRIPTION:"
	ClosingDirective     = "Generate a compelling, honest, and personalized proposal:"
	SkillsOnlyApproach   = "Skills-based (honest about learning journey)"
	DefaultTitle         = "Freelancer"
	DefaultTone          = "Professional"
	DefaultWritingStyle  = "Professional and direct"
	DefaultSkillsSummary = "Various technical skills"
	DefaultMaxWords      = 120
)

// Limits applied to the background section
const (
	MaxSkills          = 6
	MaxProjects        = 3
	MaxPatterns        = 2
	DescriptionLimit   = 150
	ChallengeLimit     = 100
	OutcomeLimit       = 100
	truncationEllipsis = "..."
)

// PatternStore reads previously successful proposal patterns
type PatternStore interface {
	ListPatterns(ctx context.Context, userID int, jobType string, limit int) ([]*models.SuccessfulProposalPattern, error)
}

// Composer builds generation prompts
type Composer struct {
	patterns PatternStore
	maxWords int
}

// NewComposer returns a Composer; maxWords <= 0 means DefaultMaxWords
func NewComposer(patterns PatternStore, maxWords int) *Composer {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	return &Composer{patterns: patterns, maxWords: maxWords}
}

// Build returns the prompt for a job description. The only I/O is the read
// of learned patterns for the user and detected job type.
func (c *Composer) Build(ctx context.Context, profile *models.UserProfile, analysis models.JobAnalysis,
	match *models.MatchResult, jobDescription string, userID int) (string, error) {
	if profile == nil && match != nil {
		profile = match.Profile
	}

	var patterns []*models.SuccessfulProposalPattern
	if c.patterns != nil {
		var err error
		patterns, err = c.patterns.ListPatterns(ctx, userID, analysis.JobType, MaxPatterns)
		if err != nil {
			return "", fmt.Errorf("failed to load proposal patterns: %w", err)
		}
	}

	var b strings.Builder
	b.WriteString(Intro + "\n\n")
	writeBackground(&b, profile, match)
	if len(patterns) > 0 {
		writePatterns(&b, patterns)
	}
	c.writeRules(&b)
	b.WriteString(JobDescriptionHeader + "\n")
	b.WriteString(jobDescription + "\n\n")
	b.WriteString(ClosingDirective)

	return b.String(), nil
}

func writeBackground(b *strings.Builder, profile *models.UserProfile, match *models.MatchResult) {
	title, tone, style := DefaultTitle, DefaultTone, DefaultWritingStyle
	years := 0
	var skills []models.UserSkill
	if profile != nil {
		title = orDefault(profile.Title, DefaultTitle)
		tone = orDefault(profile.DefaultTone, DefaultTone)
		style = orDefault(profile.WritingStyleNotes, DefaultWritingStyle)
		years = profile.YearsExperience
		skills = profile.Skills
	}

	b.WriteString(BackgroundHeader + "\n")
	fmt.Fprintf(b, "- Title: %s\n", title)
	fmt.Fprintf(b, "- Experience: %d years\n", years)
	fmt.Fprintf(b, "- Tone: %s\n", tone)

	if match == nil || match.SkillsOnly {
		fmt.Fprintf(b, "- Approach: %s\n", SkillsOnlyApproach)
		fmt.Fprintf(b, "- Skills: %s\n", FormatSkills(skills))
		fmt.Fprintf(b, "- Writing Style: %s\n", style)
		b.WriteString("\n")
		return
	}

	b.WriteString("\n" + ProjectsHeader + "\n")
	projects := match.Projects
	if len(projects) > MaxProjects {
		projects = projects[:MaxProjects]
	}
	for i, sp := range projects {
		p := sp.Project
		fmt.Fprintf(b, "%d. %s\n", i+1, p.Title)
		fmt.Fprintf(b, "   Description: %s\n", Truncate(p.Description, DescriptionLimit))
		if strings.TrimSpace(p.Challenges) != "" {
			fmt.Fprintf(b, "   Challenge solved: %s\n", Truncate(p.Challenges, ChallengeLimit))
		}
		if strings.TrimSpace(p.Outcome) != "" {
			fmt.Fprintf(b, "   Outcome: %s\n", Truncate(p.Outcome, OutcomeLimit))
		}
		if names := p.IntegrationNames(); len(names) > 0 {
			fmt.Fprintf(b, "   Integrations used: %s\n", strings.Join(names, ", "))
		}
		b.WriteString("\n")
	}
}

func writePatterns(b *strings.Builder, patterns []*models.SuccessfulProposalPattern) {
	b.WriteString(PatternsHeader + "\n")
	for _, p := range patterns {
		if p.Tone != "" {
			fmt.Fprintf(b, "- Tone that worked: %s\n", p.Tone)
		}
		if p.StructureNotes != "" {
			fmt.Fprintf(b, "- Structure notes: %s\n", p.StructureNotes)
		}
	}
	b.WriteString("\n")
}

func (c *Composer) writeRules(b *strings.Builder) {
	b.WriteString(RulesHeader + "\n")
	for _, rule := range Rules(c.maxWords) {
		b.WriteString("- " + rule + "\n")
	}
	b.WriteString("\n")
}

// Rules returns the fixed rule list of every prompt
func Rules(maxWords int) []string {
	return []string{
		fmt.Sprintf("Maximum %d words", maxWords),
		"Human, conversational tone",
		"No buzzwords or clichés ('passionate', 'guru', 'expert')",
		"No fake experience claims",
		"Mention self-learning honestly if relevant",
		"Ask 1 smart, relevant question",
		"Reference specific project experience when available",
		"Show genuine understanding of client's needs",
		"Avoid generic proposals",
	}
}

// FormatSkills renders at most MaxSkills skills as "name (level)"
func FormatSkills(skills []models.UserSkill) string {
	if len(skills) == 0 {
		return DefaultSkillsSummary
	}

	parts := make([]string, 0, MaxSkills)
	for _, s := range skills {
		if len(parts) == MaxSkills {
			break
		}
		level := orDefault(s.ProficiencyLevel, models.ProficiencyIntermediate)
		parts = append(parts, fmt.Sprintf("%s (%s)", s.SkillName, level))
	}
	return strings.Join(parts, ", ")
}

// Truncate cuts s to at most limit runes, appending "..." only when
// something was removed
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + truncationEllipsis
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
