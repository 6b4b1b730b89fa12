package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/khrees2412/proposly/internal/config"
)

// Gemini uses the Google GenAI SDK against the Gemini API backend
type Gemini struct {
	cfg  config.ProviderConfig
	opts Options

	mu     sync.Mutex
	client *genai.Client
}

func NewGemini(cfg config.ProviderConfig, opts Options) *Gemini {
	return &Gemini{cfg: cfg, opts: opts}
}

func (g *Gemini) Name() string     { return config.ProviderGemini }
func (g *Gemini) Model() string    { return g.cfg.Model }
func (g *Gemini) Configured() bool { return g.cfg.Configured() }

// genaiClient creates the SDK client on first use
func (g *Gemini) genaiClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(g.cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	}
	if g.cfg.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	g.client = client
	return client, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string) Result {
	resp, err := g.generate(ctx, prompt, g.opts.MaxTokens)
	if err != nil {
		return failure(g, err)
	}

	content := responseText(resp)
	if content == "" {
		return failure(g, errEmptyResponse)
	}

	tokens := 0
	if resp.UsageMetadata != nil {
		tokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return success(g, content, tokens, g.cfg.Model)
}

func (g *Gemini) TestConnection(ctx context.Context) error {
	_, err := g.generate(ctx, connectionTestPrompt, connectionTestMaxTokens)
	return err
}

func (g *Gemini) generate(ctx context.Context, prompt string, maxTokens int) (*genai.GenerateContentResponse, error) {
	client, err := g.genaiClient(ctx)
	if err != nil {
		return nil, err
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(ClampTemperature(g.opts.Temperature))),
		MaxOutputTokens: int32(maxTokens),
	}

	resp, err := client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), genCfg)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	return resp, nil
}

// responseText joins the text parts of every candidate
func responseText(resp *genai.GenerateContentResponse) string {
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}
	return strings.TrimSpace(builder.String())
}
