package database

import (
	"context"
	"database/sql"

	"github.com/khrees2412/proposly/pkg/models"
)

// Proposal operations

func (s *Store) CreateProposalRequest(ctx context.Context, req *models.ProposalRequest) error {
	query := `INSERT INTO proposal_requests (user_id, job_description, detected_job_type, created_at)
			  VALUES (?, ?, ?, ?)`
	result, err := s.q.ExecContext(ctx, query, req.UserID, req.JobDescription, req.DetectedJobType, req.CreatedAt)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	req.ID = int(id)
	return nil
}

func (s *Store) CreateProposal(ctx context.Context, p *models.Proposal) error {
	query := `INSERT INTO proposals (proposal_request_id, content, tokens_used, model_used, created_at)
			  VALUES (?, ?, ?, ?, ?)`
	result, err := s.q.ExecContext(ctx, query, p.ProposalRequestID, p.Content, p.TokensUsed, p.ModelUsed, p.CreatedAt)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	p.ID = int(id)
	return nil
}

const proposalColumns = `p.id, p.proposal_request_id, p.content, p.tokens_used, p.model_used, p.created_at,
	r.id, r.user_id, r.job_description, COALESCE(r.detected_job_type, ''), r.created_at`

func scanProposal(scan func(dest ...any) error) (*models.Proposal, error) {
	p := &models.Proposal{Request: &models.ProposalRequest{}}
	r := p.Request
	err := scan(&p.ID, &p.ProposalRequestID, &p.Content, &p.TokensUsed, &p.ModelUsed, &p.CreatedAt,
		&r.ID, &r.UserID, &r.JobDescription, &r.DetectedJobType, &r.CreatedAt)
	return p, err
}

// ListProposals returns the user's proposals newest first, each with its request
func (s *Store) ListProposals(ctx context.Context, userID int) ([]*models.Proposal, error) {
	query := `SELECT ` + proposalColumns + `
			  FROM proposals p JOIN proposal_requests r ON r.id = p.proposal_request_id
			  WHERE r.user_id=? ORDER BY p.created_at DESC, p.id DESC`
	rows, err := s.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	proposals := []*models.Proposal{}
	for rows.Next() {
		p, err := scanProposal(rows.Scan)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

// GetProposal returns a proposal with its request, or nil when missing
func (s *Store) GetProposal(ctx context.Context, id int) (*models.Proposal, error) {
	query := `SELECT ` + proposalColumns + `
			  FROM proposals p JOIN proposal_requests r ON r.id = p.proposal_request_id
			  WHERE p.id=?`
	p, err := scanProposal(s.q.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CountProposals is the number of proposals stored for the user
func (s *Store) CountProposals(ctx context.Context, userID int) (int, error) {
	var n int
	err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM proposals p
		JOIN proposal_requests r ON r.id = p.proposal_request_id WHERE r.user_id=?`, userID).Scan(&n)
	return n, err
}

// Feedback operations

// CreateFeedback inserts feedback; a second row for the same proposal and user
// fails with a unique violation, see IsUniqueViolation
func (s *Store) CreateFeedback(ctx context.Context, fb *models.ProposalFeedback) error {
	query := `INSERT INTO proposal_feedback (proposal_id, user_id, success, created_at) VALUES (?, ?, ?, ?)`
	result, err := s.q.ExecContext(ctx, query, fb.ProposalID, fb.UserID, fb.Success, fb.CreatedAt)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	fb.ID = int(id)
	return nil
}

func (s *Store) GetFeedback(ctx context.Context, proposalID, userID int) (*models.ProposalFeedback, error) {
	query := `SELECT id, proposal_id, user_id, success, created_at FROM proposal_feedback
			  WHERE proposal_id=? AND user_id=?`
	fb := &models.ProposalFeedback{}
	err := s.q.QueryRowContext(ctx, query, proposalID, userID).
		Scan(&fb.ID, &fb.ProposalID, &fb.UserID, &fb.Success, &fb.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return fb, err
}

// Pattern operations

// UpsertPattern stores the pattern for (user, job type), replacing any previous one
func (s *Store) UpsertPattern(ctx context.Context, p *models.SuccessfulProposalPattern) error {
	query := `INSERT INTO successful_proposal_patterns (user_id, job_type, tone, structure_notes, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)
			  ON CONFLICT(user_id, job_type) DO UPDATE SET
			  tone=excluded.tone, structure_notes=excluded.structure_notes, updated_at=excluded.updated_at`
	_, err := s.q.ExecContext(ctx, query, p.UserID, p.JobType, p.Tone, p.StructureNotes, p.UpdatedAt, p.UpdatedAt)
	if err != nil {
		return err
	}
	return s.q.QueryRowContext(ctx, `SELECT id, created_at FROM successful_proposal_patterns
		WHERE user_id=? AND job_type=?`, p.UserID, p.JobType).Scan(&p.ID, &p.CreatedAt)
}

// ListPatterns returns up to limit patterns for the user and job type, most recent first
func (s *Store) ListPatterns(ctx context.Context, userID int, jobType string, limit int) ([]*models.SuccessfulProposalPattern, error) {
	query := `SELECT id, user_id, job_type, tone, structure_notes, created_at, updated_at
			  FROM successful_proposal_patterns WHERE user_id=? AND job_type=?
			  ORDER BY updated_at DESC, id DESC LIMIT ?`
	rows, err := s.q.QueryContext(ctx, query, userID, jobType, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patterns := []*models.SuccessfulProposalPattern{}
	for rows.Next() {
		p := &models.SuccessfulProposalPattern{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.JobType, &p.Tone, &p.StructureNotes,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

// Usage operations

// UsageCount returns the counter for the user, request type and date (YYYY-MM-DD)
func (s *Store) UsageCount(ctx context.Context, userID int, requestType, date string) (int, error) {
	var count int
	err := s.q.QueryRowContext(ctx, `SELECT count FROM usage_logs WHERE user_id=? AND request_type=? AND date=?`,
		userID, requestType, date).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return count, err
}

// IncrementUsage adds one to the day's counter, creating the row when needed
func (s *Store) IncrementUsage(ctx context.Context, userID int, requestType, date string) error {
	query := `INSERT INTO usage_logs (user_id, request_type, count, date) VALUES (?, ?, 1, ?)
			  ON CONFLICT(user_id, request_type, date) DO UPDATE SET
			  count = count + 1, updated_at = CURRENT_TIMESTAMP`
	_, err := s.q.ExecContext(ctx, query, userID, requestType, date)
	return err
}

// ListUsage returns the user's usage rows newest day first
func (s *Store) ListUsage(ctx context.Context, userID int) ([]*models.UsageLog, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT id, user_id, request_type, count, date FROM usage_logs
		WHERE user_id=? ORDER BY date DESC, request_type`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []*models.UsageLog{}
	for rows.Next() {
		l := &models.UsageLog{}
		if err := rows.Scan(&l.ID, &l.UserID, &l.RequestType, &l.Count, &l.Date); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
