package matcher

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/khrees2412/proposly/pkg/models"
)

// Weights of each relevance signal
const (
	SkillMatchWeight       = 10
	IntegrationMatchWeight = 8
	IndustryMatchWeight    = 5
)

// MaxMatchedProjects is the number of projects returned by MatchProjects
const MaxMatchedProjects = 3

// SkillsOnlyMessage accompanies the fallback when a user has no projects
const SkillsOnlyMessage = "No projects found, using skills-based approach"

// Store is the data the scorer reads
type Store interface {
	ListProjects(ctx context.Context, userID int) ([]*models.Project, error)
	GetProfile(ctx context.Context, userID int) (*models.UserProfile, error)
}

// Scorer ranks a user's projects against a job analysis
type Scorer struct {
	store Store
}

func NewScorer(store Store) *Scorer {
	return &Scorer{store: store}
}

// MatchProjects returns the user's best matching projects, or the skills-only
// fallback with the user's profile when the user has no projects. Only store
// errors are returned.
func (s *Scorer) MatchProjects(ctx context.Context, userID int, analysis models.JobAnalysis) (*models.MatchResult, error) {
	projects, err := s.store.ListProjects(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	if len(projects) == 0 {
		profile, err := s.store.GetProfile(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		return &models.MatchResult{SkillsOnly: true, Profile: profile, Message: SkillsOnlyMessage}, nil
	}

	return &models.MatchResult{Projects: Rank(projects, analysis)}, nil
}

// Rank scores every project and returns the top MaxMatchedProjects, best
// first. Ties keep the input order.
func Rank(projects []*models.Project, analysis models.JobAnalysis) []models.ScoredProject {
	scored := make([]models.ScoredProject, 0, len(projects))
	for _, p := range projects {
		scored = append(scored, Score(p, analysis))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > MaxMatchedProjects {
		scored = scored[:MaxMatchedProjects]
	}
	return scored
}

// Score computes the relevance of a single project
func Score(p *models.Project, analysis models.JobAnalysis) models.ScoredProject {
	skillMatches := countMatches(analysis.Skills, p.SkillNames())
	integrationMatches := countMatches(analysis.Integrations, p.IntegrationNames())

	industry := strings.TrimSpace(p.Industry)
	industryMatch := industry != "" && strings.EqualFold(industry, analysis.Industry)

	score := skillMatches*SkillMatchWeight + integrationMatches*IntegrationMatchWeight
	if industryMatch {
		score += IndustryMatchWeight
	}

	return models.ScoredProject{
		Project:            p,
		Score:              score,
		SkillMatches:       skillMatches,
		IntegrationMatches: integrationMatches,
		IndustryMatch:      industryMatch,
	}
}

// countMatches counts the terms whose lowercase form is among names
func countMatches(terms, names []string) int {
	if len(terms) == 0 || len(names) == 0 {
		return 0
	}

	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(strings.TrimSpace(n))] = true
	}

	matched := 0
	for _, term := range terms {
		if set[strings.ToLower(term)] {
			matched++
		}
	}
	return matched
}
