package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/khrees2412/proposly/internal/config"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAI talks to the chat completions endpoint
type OpenAI struct {
	cfg        config.ProviderConfig
	opts       Options
	httpClient *http.Client
}

func NewOpenAI(cfg config.ProviderConfig, opts Options) *OpenAI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenAIBaseURL
	}
	return &OpenAI{cfg: cfg, opts: opts, httpClient: &http.Client{}}
}

func (o *OpenAI) Name() string     { return config.ProviderOpenAI }
func (o *OpenAI) Model() string    { return o.cfg.Model }
func (o *OpenAI) Configured() bool { return o.cfg.Configured() }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (o *OpenAI) Generate(ctx context.Context, prompt string) Result {
	resp, err := o.complete(ctx, prompt, o.opts.MaxTokens)
	if err != nil {
		return failure(o, err)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return failure(o, errEmptyResponse)
	}
	return success(o, content, resp.Usage.TotalTokens, o.cfg.Model)
}

func (o *OpenAI) TestConnection(ctx context.Context) error {
	_, err := o.complete(ctx, connectionTestPrompt, connectionTestMaxTokens)
	return err
}

func (o *OpenAI) complete(ctx context.Context, prompt string, maxTokens int) (*chatResponse, error) {
	reqBody := chatRequest{
		Model:       o.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: ClampTemperature(o.opts.Temperature),
		MaxTokens:   maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(o.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if result.Error != nil && result.Error.Message != "" {
			msg = result.Error.Message
		}
		return nil, fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, msg)
	}

	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("unexpected response format from OpenAI")
	}
	return &result, nil
}
