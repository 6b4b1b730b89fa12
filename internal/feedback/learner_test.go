package feedback

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/khrees2412/proposly/internal/apperr"
	"github.com/khrees2412/proposly/internal/database"
	"github.com/khrees2412/proposly/pkg/models"
)

func TestDetectTone(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"I'm excited to work on this!", ToneEnthusiastic},
		{"Hi, I'd love to help", ToneEnthusiastic},
		{"With 8 years of experience in Laravel", ToneProfessional},
		{"Hey there, quick question about scope", ToneFriendly},
		{"This proposal covers scope and timeline.", ToneBalanced},
		{"", ToneBalanced},
	}
	for _, tt := range tests {
		if got := DetectTone(tt.content); got != tt.want {
			t.Errorf("DetectTone(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestStructureNotes(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"I built a similar project for 12 clients. When can we start?",
			TraitEndsWithQuestion + ", " + TraitConcreteNumbers + ", " + TraitPastProjects},
		{"Five years in the field. Does that fit?  ", TraitEndsWithQuestion},
		{"I have shipped 30+ projects.", TraitConcreteNumbers + ", " + TraitPastProjects},
		{"Plain text.", ""},
	}
	for _, tt := range tests {
		if got := StructureNotes(tt.content); got != tt.want {
			t.Errorf("StructureNotes(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

type fixture struct {
	store    *database.Store
	learner  *Learner
	user     *models.User
	proposal *models.Proposal
}

func setup(t *testing.T, content, jobType string) *fixture {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	store := database.NewStore(db)
	user := &models.User{Name: "Ada"}
	store.CreateUser(ctx, user)

	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	req := &models.ProposalRequest{UserID: user.ID, JobDescription: "job", DetectedJobType: jobType, CreatedAt: now}
	store.CreateProposalRequest(ctx, req)
	p := &models.Proposal{ProposalRequestID: req.ID, Content: content, ModelUsed: "m", CreatedAt: now}
	if err := store.CreateProposal(ctx, p); err != nil {
		t.Fatalf("failed to create proposal: %v", err)
	}

	learner := NewLearner(store, nil).WithClock(func() time.Time { return now.Add(time.Hour) })
	return &fixture{store: store, learner: learner, user: user, proposal: p}
}

func TestRecordSuccessLearnsPattern(t *testing.T) {
	f := setup(t, "Hey! I'm thrilled to help. I did a similar project last year. Shall we talk?", "design")
	ctx := context.Background()

	fb, err := f.learner.Record(ctx, f.proposal.ID, f.user.ID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fb.ID == 0 || !fb.Success {
		t.Errorf("unexpected feedback: %+v", fb)
	}

	patterns, _ := f.store.ListPatterns(ctx, f.user.ID, "design", 2)
	if len(patterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(patterns))
	}
	if patterns[0].Tone != ToneEnthusiastic {
		t.Errorf("tone = %q", patterns[0].Tone)
	}
	if patterns[0].StructureNotes != TraitEndsWithQuestion+", "+TraitPastProjects {
		t.Errorf("structure notes = %q", patterns[0].StructureNotes)
	}
}

func TestRecordFailureStoresNoPattern(t *testing.T) {
	f := setup(t, "Hello there", "design")
	ctx := context.Background()

	if _, err := f.learner.Record(ctx, f.proposal.ID, f.user.ID, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	patterns, _ := f.store.ListPatterns(ctx, f.user.ID, "design", 2)
	if len(patterns) != 0 {
		t.Errorf("expected no pattern, got %d", len(patterns))
	}
	got, _ := f.store.GetFeedback(ctx, f.proposal.ID, f.user.ID)
	if got == nil || got.Success {
		t.Errorf("expected stored unsuccessful feedback, got %+v", got)
	}
}

func TestRecordDuplicate(t *testing.T) {
	f := setup(t, "Hello there", "design")
	ctx := context.Background()

	if _, err := f.learner.Record(ctx, f.proposal.ID, f.user.ID, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := f.learner.Record(ctx, f.proposal.ID, f.user.ID, true)
	if !errors.Is(err, apperr.ErrDuplicateFeedback) {
		t.Fatalf("expected ErrDuplicateFeedback, got %v", err)
	}

	// The rejected success must not have produced a pattern
	patterns, _ := f.store.ListPatterns(ctx, f.user.ID, "design", 2)
	if len(patterns) != 0 {
		t.Errorf("expected no pattern after duplicate, got %d", len(patterns))
	}
}

func TestRecordNotFound(t *testing.T) {
	f := setup(t, "Hello", "design")
	ctx := context.Background()

	if _, err := f.learner.Record(ctx, 9999, f.user.ID, true); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing proposal, got %v", err)
	}

	other := &models.User{Name: "Grace"}
	f.store.CreateUser(ctx, other)
	if _, err := f.learner.Record(ctx, f.proposal.ID, other.ID, true); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound for another user's proposal, got %v", err)
	}
}

// A later success replaces the learned pattern for the same job type
func TestRecordLastWriteWins(t *testing.T) {
	f := setup(t, "With 10 years of experience I can deliver this.", "web development")
	ctx := context.Background()

	if _, err := f.learner.Record(ctx, f.proposal.ID, f.user.ID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := &models.ProposalRequest{UserID: f.user.ID, JobDescription: "job", DetectedJobType: "web development", CreatedAt: time.Now()}
	f.store.CreateProposalRequest(ctx, req)
	second := &models.Proposal{ProposalRequestID: req.ID, Content: "Hey, quick one: when do we start?", CreatedAt: time.Now()}
	f.store.CreateProposal(ctx, second)

	later := f.learner.WithClock(func() time.Time { return time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC) })
	if _, err := later.Record(ctx, second.ID, f.user.ID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	patterns, _ := f.store.ListPatterns(ctx, f.user.ID, "web development", 2)
	if len(patterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(patterns))
	}
	if patterns[0].Tone != ToneFriendly || patterns[0].StructureNotes != TraitEndsWithQuestion {
		t.Errorf("expected second proposal's pattern, got %+v", patterns[0])
	}
}
