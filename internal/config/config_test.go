package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config file was not created: %v", err)
	}
	if cfg.AI.DefaultProvider != ProviderClaude {
		t.Errorf("expected default provider %q, got %q", ProviderClaude, cfg.AI.DefaultProvider)
	}
	if cfg.Generation.DailyLimit != 10 {
		t.Errorf("expected daily limit 10, got %d", cfg.Generation.DailyLimit)
	}
	if cfg.AI.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", cfg.AI.Timeout)
	}
	if cfg.AI.Temperature != 0.4 {
		t.Errorf("expected temperature 0.4, got %v", cfg.AI.Temperature)
	}
	if cfg.AI.Claude.Configured() || cfg.AI.OpenAI.Configured() || cfg.AI.Gemini.Configured() {
		t.Error("no provider should be configured by default")
	}
	if cfg.Database.Path != filepath.Join(filepath.Dir(path), "proposly.db") {
		t.Errorf("unexpected database path %q", cfg.Database.Path)
	}
}

func TestSetPersistsValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if _, err := Load(path); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if err := Set(path, "ai.openai.api_key", "sk-test"); err != nil {
		t.Fatalf("failed to set key: %v", err)
	}
	if err := Set(path, "generation.daily_limit", "3"); err != nil {
		t.Fatalf("failed to set key: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if cfg.AI.OpenAI.APIKey != "sk-test" {
		t.Errorf("expected api key to be persisted, got %q", cfg.AI.OpenAI.APIKey)
	}
	if !cfg.AI.OpenAI.Configured() {
		t.Error("openai should be configured once a key is set")
	}
	if cfg.Generation.DailyLimit != 3 {
		t.Errorf("expected daily limit 3, got %d", cfg.Generation.DailyLimit)
	}
}

func TestSetRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if _, err := Load(path); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if err := Set(path, "linkedin_password", "hunter2"); err == nil {
		t.Error("expected an error for an unknown key")
	}
}

func TestProviderConfigured(t *testing.T) {
	tests := []struct {
		name     string
		cfg      ProviderConfig
		expected bool
	}{
		{"enabled with key", ProviderConfig{APIKey: "k", Enabled: true}, true},
		{"disabled with key", ProviderConfig{APIKey: "k", Enabled: false}, false},
		{"enabled without key", ProviderConfig{APIKey: "  ", Enabled: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Configured(); got != tt.expected {
				t.Errorf("Configured() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.Server.Addr)
	}
	if cfg.AI.OpenAI.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("unexpected openai base url %q", cfg.AI.OpenAI.BaseURL)
	}
}
