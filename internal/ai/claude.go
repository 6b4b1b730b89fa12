package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/khrees2412/proposly/internal/config"
)

// Claude uses the Anthropic Messages API
type Claude struct {
	cfg    config.ProviderConfig
	opts   Options
	client anthropic.Client
}

func NewClaude(cfg config.ProviderConfig, opts Options) *Claude {
	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Claude{cfg: cfg, opts: opts, client: anthropic.NewClient(reqOpts...)}
}

func (c *Claude) Name() string     { return config.ProviderClaude }
func (c *Claude) Model() string    { return c.cfg.Model }
func (c *Claude) Configured() bool { return c.cfg.Configured() }

func (c *Claude) Generate(ctx context.Context, prompt string) Result {
	msg, err := c.send(ctx, prompt, c.opts.MaxTokens)
	if err != nil {
		return failure(c, err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	content := strings.TrimSpace(b.String())
	if content == "" {
		return failure(c, errEmptyResponse)
	}

	tokens := int(msg.Usage.InputTokens + msg.Usage.OutputTokens)
	return success(c, content, tokens, c.cfg.Model)
}

func (c *Claude) TestConnection(ctx context.Context) error {
	_, err := c.send(ctx, connectionTestPrompt, connectionTestMaxTokens)
	return err
}

func (c *Claude) send(ctx context.Context, prompt string, maxTokens int) (*anthropic.Message, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.cfg.Model),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(ClampTemperature(c.opts.Temperature)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call Claude API: %w", err)
	}
	return msg, nil
}
