package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/khrees2412/proposly/internal/ai"
	"github.com/khrees2412/proposly/internal/proposal"
	"github.com/khrees2412/proposly/pkg/models"
)

// ProposalService is the generation workflow used by the API
type ProposalService interface {
	Generate(ctx context.Context, userID int, jobDescription, provider string) (*models.GenerationResult, error)
	ListProposals(ctx context.Context, userID int) ([]*models.Proposal, error)
	GetProposal(ctx context.Context, userID, proposalID int) (*models.Proposal, error)
	UsageToday(ctx context.Context, userID int) (*proposal.Usage, error)
}

// FeedbackRecorder stores proposal outcomes
type FeedbackRecorder interface {
	Record(ctx context.Context, proposalID, userID int, success bool) (*models.ProposalFeedback, error)
}

// ProviderGateway exposes provider diagnostics
type ProviderGateway interface {
	Providers() []ai.ProviderStatus
	TestConnection(ctx context.Context, name string) error
	Compare(ctx context.Context, prompt string) ([]ai.Result, error)
}

type ProposalHandler struct {
	proposals ProposalService
	feedback  FeedbackRecorder
}

func NewProposalHandler(proposals ProposalService, feedback FeedbackRecorder) *ProposalHandler {
	return &ProposalHandler{proposals: proposals, feedback: feedback}
}

type generateRequest struct {
	JobDescription string `json:"job_description"`
	Provider       string `json:"provider"`
}

func (h *ProposalHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, validationError("invalid request body"))
		return
	}

	result, err := h.proposals.Generate(c.Request.Context(), userID(c), req.JobDescription, strings.TrimSpace(req.Provider))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, result)
}

type feedbackRequest struct {
	Success *bool `json:"success"`
}

func (h *ProposalHandler) Feedback(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Success == nil {
		RespondError(c, validationError("success is required"))
		return
	}

	fb, err := h.feedback.Record(c.Request.Context(), id, userID(c), *req.Success)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, fb)
}

func (h *ProposalHandler) List(c *gin.Context) {
	proposals, err := h.proposals.ListProposals(c.Request.Context(), userID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"proposals": proposals})
}

func (h *ProposalHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.proposals.GetProposal(c.Request.Context(), userID(c), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, p)
}

func (h *ProposalHandler) Usage(c *gin.Context) {
	usage, err := h.proposals.UsageToday(c.Request.Context(), userID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, usage)
}

type ProviderHandler struct {
	gateway ProviderGateway
}

func NewProviderHandler(gateway ProviderGateway) *ProviderHandler {
	return &ProviderHandler{gateway: gateway}
}

func (h *ProviderHandler) List(c *gin.Context) {
	RespondOK(c, gin.H{"providers": h.gateway.Providers()})
}

func (h *ProviderHandler) Test(c *gin.Context) {
	name := c.Param("name")
	if err := h.gateway.TestConnection(c.Request.Context(), name); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"provider": name, "connected": true})
}

type compareRequest struct {
	Prompt string `json:"prompt"`
}

func (h *ProviderHandler) Compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		RespondError(c, validationError("prompt is required"))
		return
	}

	results, err := h.gateway.Compare(c.Request.Context(), req.Prompt)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"results": results})
}

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// pathID parses the :id parameter, responding with 400 when it is invalid
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		RespondError(c, validationError("invalid id"))
		return 0, false
	}
	return id, true
}
