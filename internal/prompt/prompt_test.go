package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/khrees2412/proposly/pkg/models"
)

type fakePatterns struct {
	patterns []*models.SuccessfulProposalPattern
	err      error
	gotType  string
	gotLimit int
}

func (f *fakePatterns) ListPatterns(ctx context.Context, userID int, jobType string, limit int) ([]*models.SuccessfulProposalPattern, error) {
	f.gotType, f.gotLimit = jobType, limit
	return f.patterns, f.err
}

func testProfile() *models.UserProfile {
	return &models.UserProfile{
		Title:           "Full-Stack Developer",
		YearsExperience: 5,
		DefaultTone:     "friendly",
		Skills: []models.UserSkill{
			{SkillName: "Laravel", ProficiencyLevel: models.ProficiencyExpert},
			{SkillName: "Vue", ProficiencyLevel: models.ProficiencyIntermediate},
		},
	}
}

func assertOrder(t *testing.T, text string, parts ...string) {
	t.Helper()
	last := -1
	for _, p := range parts {
		idx := strings.Index(text, p)
		if idx < 0 {
			t.Fatalf("missing %q in prompt:\n%s", p, text)
		}
		if idx <= last {
			t.Fatalf("%q out of order in prompt:\n%s", p, text)
		}
		last = idx
	}
}

func TestBuildSectionOrderWithProjects(t *testing.T) {
	patterns := &fakePatterns{patterns: []*models.SuccessfulProposalPattern{
		{Tone: "enthusiastic", StructureNotes: "ends with a question"},
	}}
	c := NewComposer(patterns, 0)

	match := &models.MatchResult{Projects: []models.ScoredProject{
		{Project: &models.Project{
			Title:        "Clinic portal",
			Description:  "Booking system",
			Challenges:   "Legacy data",
			Outcome:      "40% fewer calls",
			Integrations: []models.ProjectIntegration{{Name: "Stripe"}, {Name: "Twilio"}},
		}},
	}}
	analysis := models.JobAnalysis{JobType: "web development"}

	text, err := c.Build(context.Background(), testProfile(), analysis, match, "Build a clinic website", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertOrder(t, text,
		Intro,
		BackgroundHeader,
		"- Title: Full-Stack Developer",
		"- Experience: 5 years",
		"- Tone: friendly",
		ProjectsHeader,
		"1. Clinic portal",
		"   Description: Booking system\n",
		"   Challenge solved: Legacy data\n",
		"   Outcome: 40% fewer calls\n",
		"   Integrations used: Stripe, Twilio",
		PatternsHeader,
		"- Tone that worked: enthusiastic",
		"- Structure notes: ends with a question",
		RulesHeader,
		"- Maximum 120 words",
		"- Avoid generic proposals",
		JobDescriptionHeader+"\nBuild a clinic website\n",
		ClosingDirective,
	)

	if !strings.HasSuffix(text, ClosingDirective) {
		t.Error("prompt must end with the closing directive")
	}
	if strings.Contains(text, SkillsOnlyApproach) {
		t.Error("project prompt must not use the skills-only approach")
	}
	if patterns.gotType != "web development" || patterns.gotLimit != MaxPatterns {
		t.Errorf("patterns read with (%q, %d)", patterns.gotType, patterns.gotLimit)
	}
}

func TestBuildSkillsOnly(t *testing.T) {
	c := NewComposer(&fakePatterns{}, 150)
	match := &models.MatchResult{SkillsOnly: true}

	text, err := c.Build(context.Background(), testProfile(), models.JobAnalysis{}, match, "desc", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertOrder(t, text,
		BackgroundHeader,
		"- Approach: "+SkillsOnlyApproach,
		"- Skills: Laravel (expert), Vue (intermediate)",
		"- Writing Style: "+DefaultWritingStyle,
		RulesHeader,
		"- Maximum 150 words",
	)
	if strings.Contains(text, ProjectsHeader) || strings.Contains(text, PatternsHeader) {
		t.Errorf("unexpected sections in skills-only prompt:\n%s", text)
	}
}

func TestBuildDefaults(t *testing.T) {
	c := NewComposer(nil, 0)
	text, err := c.Build(context.Background(), nil, models.JobAnalysis{}, &models.MatchResult{SkillsOnly: true}, "desc", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"- Title: " + DefaultTitle,
		"- Tone: " + DefaultTone,
		"- Skills: " + DefaultSkillsSummary,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestBuildPatternError(t *testing.T) {
	boom := errors.New("db down")
	c := NewComposer(&fakePatterns{err: boom}, 0)
	if _, err := c.Build(context.Background(), nil, models.JobAnalysis{}, nil, "desc", 1); !errors.Is(err, boom) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestBuildCapsProjects(t *testing.T) {
	match := &models.MatchResult{}
	for i := 0; i < 5; i++ {
		match.Projects = append(match.Projects, models.ScoredProject{Project: &models.Project{Title: "P"}})
	}
	text, _ := NewComposer(nil, 0).Build(context.Background(), nil, models.JobAnalysis{}, match, "desc", 1)
	if strings.Contains(text, "4. P") || !strings.Contains(text, "3. P") {
		t.Errorf("expected exactly %d projects:\n%s", MaxProjects, text)
	}
}

func TestTruncateBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"shorter", "abc", 5, "abc"},
		{"exact", strings.Repeat("a", 150), 150, strings.Repeat("a", 150)},
		{"one over", strings.Repeat("a", 151), 150, strings.Repeat("a", 150) + "..."},
		{"runes", "héllo wörld", 5, "héllo..."},
		{"empty", "", 100, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.limit); got != tt.want {
				t.Errorf("Truncate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProjectFieldLimits(t *testing.T) {
	long := strings.Repeat("x", 300)
	match := &models.MatchResult{Projects: []models.ScoredProject{{Project: &models.Project{
		Title: "Long", Description: long, Challenges: long, Outcome: long,
	}}}}
	text, _ := NewComposer(nil, 0).Build(context.Background(), nil, models.JobAnalysis{}, match, "desc", 1)

	for _, want := range []string{
		"Description: " + strings.Repeat("x", DescriptionLimit) + "...\n",
		"Challenge solved: " + strings.Repeat("x", ChallengeLimit) + "...\n",
		"Outcome: " + strings.Repeat("x", OutcomeLimit) + "...\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing truncated field %q", want[:20])
		}
	}
}

func TestFormatSkillsCapsAtSix(t *testing.T) {
	var skills []models.UserSkill
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		skills = append(skills, models.UserSkill{SkillName: n})
	}
	got := FormatSkills(skills)
	want := "a (intermediate), b (intermediate), c (intermediate), d (intermediate), e (intermediate), f (intermediate)"
	if got != want {
		t.Errorf("FormatSkills = %q", got)
	}
}
