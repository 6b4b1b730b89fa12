package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/khrees2412/proposly/internal/config"
)

func TestOpenAIGenerate(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("missing bearer token")
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"model":"gpt-4o-mini","choices":[{"message":{"role":"assistant","content":"  Hello client  "}}],"usage":{"total_tokens":57}}`))
	}))
	defer server.Close()

	o := NewOpenAI(config.ProviderConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: server.URL, Enabled: true},
		Options{Temperature: 0.4, MaxTokens: DefaultMaxTokens})

	res := o.Generate(context.Background(), "write it")
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Content != "Hello client" || res.TokensUsed != 57 || res.ModelUsed != "gpt-4o-mini" {
		t.Errorf("unexpected result: %+v", res)
	}
	if got.MaxTokens != DefaultMaxTokens || got.Temperature != 0.4 || got.Messages[0].Content != "write it" {
		t.Errorf("unexpected request: %+v", got)
	}
}

func TestOpenAIErrorsBecomeResults(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"api error", http.StatusUnauthorized, `{"error":{"message":"bad key"}}`, "bad key"},
		{"not json", http.StatusBadGateway, `upstream down`, "upstream down"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "unexpected response format"},
		{"empty content", http.StatusOK, `{"choices":[{"message":{"content":"  "}}]}`, errEmptyResponse.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			o := NewOpenAI(config.ProviderConfig{APIKey: "k", Model: "m", BaseURL: server.URL, Enabled: true}, Options{})
			res := o.Generate(context.Background(), "p")
			if res.Success {
				t.Fatal("expected failure")
			}
			if !strings.Contains(res.Error, tt.want) {
				t.Errorf("error %q does not contain %q", res.Error, tt.want)
			}
			if res.Provider != config.ProviderOpenAI {
				t.Errorf("unexpected provider %q", res.Provider)
			}
		})
	}
}

func TestOpenAIUnreachable(t *testing.T) {
	o := NewOpenAI(config.ProviderConfig{APIKey: "k", Model: "m", BaseURL: "http://127.0.0.1:1", Enabled: true}, Options{})
	if res := o.Generate(context.Background(), "p"); res.Success || res.Error == "" {
		t.Errorf("expected transport failure, got %+v", res)
	}
	if err := o.TestConnection(context.Background()); err == nil {
		t.Error("expected connection test failure")
	}
}

func TestClaudeGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/messages") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "sk-ant" {
			t.Errorf("missing api key header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-5-sonnet-20241022",
			"content":[{"type":"text","text":"Hi, happy to help."}],"stop_reason":"end_turn",
			"usage":{"input_tokens":120,"output_tokens":30}}`))
	}))
	defer server.Close()

	c := NewClaude(config.ProviderConfig{APIKey: "sk-ant", Model: "claude-3-5-sonnet-20241022", BaseURL: server.URL, Enabled: true},
		Options{Temperature: 0.4, MaxTokens: DefaultMaxTokens})

	res := c.Generate(context.Background(), "prompt")
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Content != "Hi, happy to help." || res.TokensUsed != 150 || res.Provider != config.ProviderClaude {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestGeminiGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-1.5-flash:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Hello from Gemini"}]}}],
			"usageMetadata":{"promptTokenCount":80,"candidatesTokenCount":20,"totalTokenCount":100}}`))
	}))
	defer server.Close()

	g := NewGemini(config.ProviderConfig{APIKey: "g-key", Model: "gemini-1.5-flash", BaseURL: server.URL, Enabled: true},
		Options{Temperature: 0.4, MaxTokens: DefaultGeminiMaxTokens})

	res := g.Generate(context.Background(), "prompt")
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Content != "Hello from Gemini" || res.TokensUsed != 100 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestUnconfiguredAdapters(t *testing.T) {
	cfg := config.ProviderConfig{Model: "m", Enabled: true}
	for _, p := range []Provider{NewClaude(cfg, Options{}), NewOpenAI(cfg, Options{}), NewGemini(cfg, Options{})} {
		if p.Configured() {
			t.Errorf("%s should not be configured without a key", p.Name())
		}
	}
}
