// Package feedback records proposal outcomes and learns from the winners.
package feedback

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/khrees2412/proposly/internal/analyzer"
	"github.com/khrees2412/proposly/internal/apperr"
	"github.com/khrees2412/proposly/internal/database"
	"github.com/khrees2412/proposly/internal/logger"
	"github.com/khrees2412/proposly/pkg/models"
)

// Tone labels stored on learned patterns
const (
	ToneEnthusiastic = "enthusiastic"
	ToneProfessional = "professional"
	ToneFriendly     = "friendly"
	ToneBalanced     = "balanced"
)

// Structural traits detected in a proposal
const (
	TraitEndsWithQuestion = "ends with a question"
	TraitConcreteNumbers  = "mentions concrete numbers"
	TraitPastProjects     = "references past projects"
)

var (
	enthusiasticWords = regexp.MustCompile(`(?i)\b(excited|exciting|thrilled|love|delighted|eager|amazing|can't wait)\b`)
	professionalWords = regexp.MustCompile(`(?i)\b(experience|experienced|professional|expertise|delivered|track record|years)\b`)
	casualGreetings   = regexp.MustCompile(`(?i)\b(hey|hi|hello|howdy|cheers)\b`)
	concreteNumbers   = regexp.MustCompile(`(?i)\b\d+\+?\s*(years?|projects?|clients?)\b`)
	projectMentions   = regexp.MustCompile(`(?i)\b(projects?|similar)\b`)
)

// Learner stores feedback and keeps one pattern per user and job type
type Learner struct {
	store  *database.Store
	now    func() time.Time
	logger *zap.Logger
}

func NewLearner(store *database.Store, log *zap.Logger) *Learner {
	return &Learner{store: store, now: time.Now, logger: logger.OrNop(log)}
}

// WithClock returns a copy of l using now for timestamps
func (l *Learner) WithClock(now func() time.Time) *Learner {
	c := *l
	c.now = now
	return &c
}

// Record stores whether a proposal won the job. The proposal must belong to
// the user and feedback can be given only once. A success replaces the
// learned pattern for the proposal's job type.
func (l *Learner) Record(ctx context.Context, proposalID, userID int, success bool) (*models.ProposalFeedback, error) {
	fb := &models.ProposalFeedback{
		ProposalID: proposalID,
		UserID:     userID,
		Success:    success,
		CreatedAt:  l.now().UTC(),
	}
	var pattern *models.SuccessfulProposalPattern

	err := l.store.InTxRetry(ctx, func(tx *database.Store) error {
		p, err := tx.GetProposal(ctx, proposalID)
		if err != nil {
			return fmt.Errorf("failed to load proposal: %w", err)
		}
		if p == nil || p.Request.UserID != userID {
			return fmt.Errorf("proposal %d: %w", proposalID, apperr.ErrNotFound)
		}

		if err := tx.CreateFeedback(ctx, fb); err != nil {
			if database.IsUniqueViolation(err) {
				return apperr.ErrDuplicateFeedback
			}
			return fmt.Errorf("failed to store feedback: %w", err)
		}

		if !success {
			return nil
		}

		jobType := p.Request.DetectedJobType
		if jobType == "" {
			jobType = analyzer.General
		}
		pattern = &models.SuccessfulProposalPattern{
			UserID:         userID,
			JobType:        jobType,
			Tone:           DetectTone(p.Content),
			StructureNotes: StructureNotes(p.Content),
			UpdatedAt:      fb.CreatedAt,
		}
		if err := tx.UpsertPattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to store proposal pattern: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log := l.logger.With(zap.Int(logger.FieldUserID, userID), zap.Int("proposal_id", proposalID))
	if pattern != nil {
		log.Info("learned proposal pattern",
			zap.String("job_type", pattern.JobType),
			zap.String("tone", pattern.Tone),
			zap.String("structure_notes", pattern.StructureNotes))
	} else {
		log.Debug("recorded proposal feedback", zap.Bool("success", success))
	}
	return fb, nil
}

// DetectTone labels content by the first matching word family:
// enthusiasm, then professional or experience words, then casual greetings.
func DetectTone(content string) string {
	switch {
	case enthusiasticWords.MatchString(content):
		return ToneEnthusiastic
	case professionalWords.MatchString(content):
		return ToneProfessional
	case casualGreetings.MatchString(content):
		return ToneFriendly
	default:
		return ToneBalanced
	}
}

// StructureNotes lists the structural traits found in content, comma-joined
func StructureNotes(content string) string {
	var traits []string
	if strings.HasSuffix(strings.TrimSpace(content), "?") {
		traits = append(traits, TraitEndsWithQuestion)
	}
	if concreteNumbers.MatchString(content) {
		traits = append(traits, TraitConcreteNumbers)
	}
	if projectMentions.MatchString(content) {
		traits = append(traits, TraitPastProjects)
	}
	return strings.Join(traits, ", ")
}
