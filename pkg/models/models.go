package models

import "time"

// Proficiency levels accepted for a user skill
const (
	ProficiencyBeginner     = "beginner"
	ProficiencyIntermediate = "intermediate"
	ProficiencyExpert       = "expert"
)

// RequestTypeProposalGeneration is the usage log bucket for generate calls
const RequestTypeProposalGeneration = "proposal_generation"

// User represents an account that owns a profile, skills and projects
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserProfile holds the freelancer background used in prompts
type UserProfile struct {
	ID                int         `json:"id"`
	UserID            int         `json:"user_id"`
	Title             string      `json:"title"`
	YearsExperience   int         `json:"years_experience"`
	DefaultTone       string      `json:"default_tone"`
	WritingStyleNotes string      `json:"writing_style_notes"`
	Bio               string      `json:"bio"`
	Birthday          *time.Time  `json:"birthday"`
	Country           string      `json:"country"`
	City              string      `json:"city"`
	Address           string      `json:"address"`
	PortfolioURL      string      `json:"portfolio_site_link"`
	GitHubURL         string      `json:"github_link"`
	LinkedInURL       string      `json:"linkedin_link"`
	Skills            []UserSkill `json:"skills,omitempty"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// Skill is an entry of the global skills catalog
type Skill struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// UserSkill links a user to a catalog skill with a self-rated level
type UserSkill struct {
	ID               int    `json:"id"`
	UserID           int    `json:"user_id"`
	SkillID          int    `json:"skill_id"`
	SkillName        string `json:"skill_name"`
	ProficiencyLevel string `json:"proficiency_level"` // beginner, intermediate, expert
}

// Project is a past piece of work used as scoring and prompt material
type Project struct {
	ID           int                  `json:"id"`
	UserID       int                  `json:"user_id"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Industry     string               `json:"industry"`
	Challenges   string               `json:"challenges"`
	Outcome      string               `json:"outcome"`
	Skills       []Skill              `json:"skills"`
	Integrations []ProjectIntegration `json:"integrations"`
	CreatedAt    time.Time            `json:"created_at"`
}

// ProjectIntegration is a named third-party service used by a project, e.g. "Stripe"
type ProjectIntegration struct {
	ID        int    `json:"id"`
	ProjectID int    `json:"project_id"`
	Name      string `json:"integration_name"`
}

// SkillNames returns the names of the skills attached to the project
func (p *Project) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, s.Name)
	}
	return names
}

// IntegrationNames returns the names of the integrations used by the project
func (p *Project) IntegrationNames() []string {
	names := make([]string, 0, len(p.Integrations))
	for _, i := range p.Integrations {
		names = append(names, i.Name)
	}
	return names
}

// ProposalRequest records a submitted job description
type ProposalRequest struct {
	ID              int       `json:"id"`
	UserID          int       `json:"user_id"`
	JobDescription  string    `json:"job_description"`
	DetectedJobType string    `json:"detected_job_type"`
	CreatedAt       time.Time `json:"created_at"`
}

// Proposal is a generated proposal text
type Proposal struct {
	ID                int              `json:"id"`
	ProposalRequestID int              `json:"proposal_request_id"`
	Content           string           `json:"content"`
	TokensUsed        int              `json:"tokens_used"`
	ModelUsed         string           `json:"model_used"`
	CreatedAt         time.Time        `json:"created_at"`
	Request           *ProposalRequest `json:"proposal_request,omitempty"`
}

// ProposalFeedback tells whether a proposal won the job
type ProposalFeedback struct {
	ID         int       `json:"id"`
	ProposalID int       `json:"proposal_id"`
	UserID     int       `json:"user_id"`
	Success    bool      `json:"success"`
	CreatedAt  time.Time `json:"created_at"`
}

// SuccessfulProposalPattern is the remembered style of the last winning proposal
// for a user and job type
type SuccessfulProposalPattern struct {
	ID             int       `json:"id"`
	UserID         int       `json:"user_id"`
	JobType        string    `json:"job_type"`
	Tone           string    `json:"tone"`
	StructureNotes string    `json:"structure_notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UsageLog counts requests of one type per user per day
type UsageLog struct {
	ID          int    `json:"id"`
	UserID      int    `json:"user_id"`
	RequestType string `json:"request_type"`
	Count       int    `json:"count"`
	Date        string `json:"date"` // YYYY-MM-DD
}

// JobAnalysis is the structured inference extracted from a job description
type JobAnalysis struct {
	JobType      string   `json:"job_type"`
	Skills       []string `json:"skills"`
	Integrations []string `json:"integrations"`
	Industry     string   `json:"industry"`
	Description  string   `json:"description"`
}

// ScoredProject is a project ranked against a job analysis
type ScoredProject struct {
	Project            *Project `json:"project"`
	Score              int      `json:"score"`
	SkillMatches       int      `json:"skill_matches"`
	IntegrationMatches int      `json:"integration_matches"`
	IndustryMatch      bool     `json:"industry_match"`
}

// MatchResult holds either the top scored projects or, when the user has no
// projects, the skills-only fallback marker with the user's profile
type MatchResult struct {
	SkillsOnly bool            `json:"skills_only"`
	Projects   []ScoredProject `json:"projects,omitempty"`
	Profile    *UserProfile    `json:"profile,omitempty"`
	Message    string          `json:"message,omitempty"`
}

// GenerationResult is what a successful generate call returns
type GenerationResult struct {
	Proposal        *Proposal    `json:"proposal"`
	JobAnalysis     JobAnalysis  `json:"job_analysis"`
	MatchedProjects *MatchResult `json:"matched_projects"`
	TokensUsed      int          `json:"tokens_used"`
	ProviderUsed    string       `json:"provider_used"`
}
