package ai

import (
	"context"
	"errors"
	"time"
)

// Generation defaults shared by every backend
const (
	DefaultTemperature     = 0.4
	DefaultMaxTokens       = 200
	DefaultGeminiMaxTokens = 300
	DefaultTimeout         = 30 * time.Second

	// connectionTestPrompt is sent by TestConnection with a tiny token budget
	connectionTestPrompt    = "Hello, this is a connection test. Please respond with \"Connection successful\"."
	connectionTestMaxTokens = 10
)

// errEmptyResponse is reported when a backend answers without text
var errEmptyResponse = errors.New("provider returned an empty response")

// Result is the outcome of a single completion. Failures are reported with
// Success false and a message in Error, never as a Go error.
type Result struct {
	Success    bool   `json:"success"`
	Content    string `json:"content,omitempty"`
	TokensUsed int    `json:"tokens_used"`
	ModelUsed  string `json:"model_used"`
	Provider   string `json:"provider"`
	Error      string `json:"error,omitempty"`
}

// Provider is one text-completion backend
type Provider interface {
	Name() string
	Model() string
	Configured() bool
	Generate(ctx context.Context, prompt string) Result
	TestConnection(ctx context.Context) error
}

// Options tunes a completion request
type Options struct {
	Temperature float64
	MaxTokens   int
}

// ClampTemperature keeps t within [0, 1]
func ClampTemperature(t float64) float64 {
	return max(0.0, min(1.0, t))
}

func success(p Provider, content string, tokens int, model string) Result {
	if model == "" {
		model = p.Model()
	}
	return Result{Success: true, Content: content, TokensUsed: tokens, ModelUsed: model, Provider: p.Name()}
}

func failure(p Provider, err error) Result {
	return Result{Success: false, ModelUsed: p.Model(), Provider: p.Name(), Error: err.Error()}
}
