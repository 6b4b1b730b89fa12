// Package proposal runs the proposal generation workflow.
package proposal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/khrees2412/proposly/internal/ai"
	"github.com/khrees2412/proposly/internal/analyzer"
	"github.com/khrees2412/proposly/internal/apperr"
	"github.com/khrees2412/proposly/internal/database"
	"github.com/khrees2412/proposly/internal/logger"
	"github.com/khrees2412/proposly/internal/matcher"
	"github.com/khrees2412/proposly/internal/prompt"
	"github.com/khrees2412/proposly/pkg/models"
)

// DefaultDailyLimit is the number of generations allowed per user per day
const DefaultDailyLimit = 10

const dateLayout = "2006-01-02"

// Generator produces proposal text from a prompt
type Generator interface {
	Generate(ctx context.Context, prompt, requested string) ai.Result
}

// Service generates, stores and lists proposals
type Service struct {
	store      *database.Store
	scorer     *matcher.Scorer
	composer   *prompt.Composer
	gateway    Generator
	dailyLimit int
	now        func() time.Time
	logger     *zap.Logger
}

// Option customises a Service
type Option func(*Service)

// WithClock sets the clock used for timestamps and the usage day
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithDailyLimit overrides the per-day generation limit
func WithDailyLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.dailyLimit = limit
		}
	}
}

// WithMaxWords sets the word limit stated in prompts
func WithMaxWords(words int) Option {
	return func(s *Service) { s.composer = prompt.NewComposer(s.store, words) }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = logger.OrNop(l) }
}

func NewService(store *database.Store, gateway Generator, opts ...Option) *Service {
	s := &Service{
		store:      store,
		scorer:     matcher.NewScorer(store),
		composer:   prompt.NewComposer(store, prompt.DefaultMaxWords),
		gateway:    gateway,
		dailyLimit: DefaultDailyLimit,
		now:        time.Now,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate analyzes the job description, dispatches a prompt to an AI
// provider and stores the request, the proposal and the usage count
// atomically. Nothing is stored when validation, the quota or the provider
// fails.
func (s *Service) Generate(ctx context.Context, userID int, jobDescription, provider string) (*models.GenerationResult, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("%w: job description is required", apperr.ErrValidation)
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, apperr.ErrNotFound)
	}

	now := s.now().UTC()
	today := now.Format(dateLayout)
	log := s.logger.With(zap.Int(logger.FieldUserID, userID))

	// Fail fast before spending a provider call; the check is repeated in the transaction.
	if err := s.checkQuota(ctx, s.store, userID, today); err != nil {
		return nil, err
	}

	analysis := analyzer.Analyze(jobDescription)

	match, err := s.scorer.MatchProjects(ctx, userID, analysis)
	if err != nil {
		return nil, err
	}

	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	promptText, err := s.composer.Build(ctx, profile, analysis, match, jobDescription, userID)
	if err != nil {
		return nil, err
	}

	res := s.gateway.Generate(ctx, promptText, provider)
	if !res.Success {
		log.Warn("proposal generation failed", zap.String(logger.FieldProvider, res.Provider), zap.String("error", res.Error))
		return nil, fmt.Errorf("%w: %s", apperr.ErrGenerationFailed, res.Error)
	}

	req := &models.ProposalRequest{
		UserID:          userID,
		JobDescription:  jobDescription,
		DetectedJobType: analysis.JobType,
		CreatedAt:       now,
	}
	var proposal *models.Proposal

	err = s.store.InTxRetry(ctx, func(tx *database.Store) error {
		if err := s.checkQuota(ctx, tx, userID, today); err != nil {
			return err
		}
		if err := tx.CreateProposalRequest(ctx, req); err != nil {
			return fmt.Errorf("failed to store proposal request: %w", err)
		}

		proposal = &models.Proposal{
			ProposalRequestID: req.ID,
			Content:           res.Content,
			TokensUsed:        res.TokensUsed,
			ModelUsed:         res.ModelUsed,
			CreatedAt:         now,
			Request:           req,
		}
		if err := tx.CreateProposal(ctx, proposal); err != nil {
			return fmt.Errorf("failed to store proposal: %w", err)
		}

		if err := tx.IncrementUsage(ctx, userID, models.RequestTypeProposalGeneration, today); err != nil {
			return fmt.Errorf("failed to record usage: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("proposal generated",
		zap.Int("proposal_id", proposal.ID),
		zap.String("job_type", analysis.JobType),
		zap.String(logger.FieldProvider, res.Provider),
		zap.String(logger.FieldModel, res.ModelUsed),
		zap.Int("tokens_used", res.TokensUsed))

	return &models.GenerationResult{
		Proposal:        proposal,
		JobAnalysis:     analysis,
		MatchedProjects: match,
		TokensUsed:      res.TokensUsed,
		ProviderUsed:    res.Provider,
	}, nil
}

func (s *Service) checkQuota(ctx context.Context, store *database.Store, userID int, today string) error {
	used, err := store.UsageCount(ctx, userID, models.RequestTypeProposalGeneration, today)
	if err != nil {
		return fmt.Errorf("failed to read usage: %w", err)
	}
	if used >= s.dailyLimit {
		return apperr.ErrQuotaExceeded
	}
	return nil
}

// ListProposals returns the user's proposals newest first
func (s *Service) ListProposals(ctx context.Context, userID int) ([]*models.Proposal, error) {
	proposals, err := s.store.ListProposals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	return proposals, nil
}

// GetProposal returns one of the user's proposals
func (s *Service) GetProposal(ctx context.Context, userID, proposalID int) (*models.Proposal, error) {
	p, err := s.store.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load proposal: %w", err)
	}
	if p == nil || p.Request.UserID != userID {
		return nil, fmt.Errorf("proposal %d: %w", proposalID, apperr.ErrNotFound)
	}
	return p, nil
}

// Usage is the user's generation count for the current day
type Usage struct {
	Date      string `json:"date"`
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
}

// UsageToday reports how many generations the user has left today
func (s *Service) UsageToday(ctx context.Context, userID int) (*Usage, error) {
	today := s.now().UTC().Format(dateLayout)
	used, err := s.store.UsageCount(ctx, userID, models.RequestTypeProposalGeneration, today)
	if err != nil {
		return nil, fmt.Errorf("failed to read usage: %w", err)
	}
	return &Usage{Date: today, Used: used, Limit: s.dailyLimit, Remaining: max(0, s.dailyLimit-used)}, nil
}
