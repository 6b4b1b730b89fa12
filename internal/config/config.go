package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Provider names understood by the AI gateway
const (
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds the application configuration
type Config struct {
	AI         AIConfig         `mapstructure:"ai"`
	Generation GenerationConfig `mapstructure:"generation"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
}

// AIConfig selects and tunes the text-completion backends
type AIConfig struct {
	DefaultProvider string         `mapstructure:"default_provider"` // claude, openai, gemini
	Temperature     float64        `mapstructure:"temperature"`
	Timeout         time.Duration  `mapstructure:"timeout"`
	Claude          ProviderConfig `mapstructure:"claude"`
	OpenAI          ProviderConfig `mapstructure:"openai"`
	Gemini          ProviderConfig `mapstructure:"gemini"`
}

// ProviderConfig holds the credentials and model of one backend
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
	Enabled bool   `mapstructure:"enabled"`
}

// Configured reports whether the backend is enabled and has credentials
func (p ProviderConfig) Configured() bool {
	return p.Enabled && strings.TrimSpace(p.APIKey) != ""
}

// GenerationConfig holds business limits for proposal generation
type GenerationConfig struct {
	DailyLimit int `mapstructure:"daily_limit"`
	MaxWords   int `mapstructure:"max_words"`
}

// DatabaseConfig locates the SQLite database
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// ValidKeys lists the keys accepted by Set
var ValidKeys = []string{
	"ai.default_provider", "ai.temperature", "ai.timeout",
	"ai.claude.api_key", "ai.claude.model", "ai.claude.enabled",
	"ai.openai.api_key", "ai.openai.model", "ai.openai.enabled",
	"ai.gemini.api_key", "ai.gemini.model", "ai.gemini.enabled",
	"generation.daily_limit", "generation.max_words", "database.path", "server.addr",
	"log.json", "log.debug",
}

// HomeDir returns the directory holding the config file and database
func HomeDir() (string, error) {
	if dir := os.Getenv("PROPOSLY_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".proposly"), nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	dir, err := HomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the configuration file at path, creating it with defaults when
// missing. An empty path means the default location.
func Load(path string) (*Config, error) {
	if path == "" {
		path = GetConfigPath()
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfig(path); err != nil {
			return nil, err
		}
	}

	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = filepath.Join(filepath.Dir(path), "proposly.db")
	}

	return cfg, nil
}

// Default returns the configuration used when no file is present
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	return cfg
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("PROPOSLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ai.default_provider", ProviderClaude)
	v.SetDefault("ai.temperature", 0.4)
	v.SetDefault("ai.timeout", "30s")

	v.SetDefault("ai.claude.api_key", "")
	v.SetDefault("ai.claude.model", "claude-3-5-sonnet-20241022")
	v.SetDefault("ai.claude.base_url", "")
	v.SetDefault("ai.claude.enabled", true)

	v.SetDefault("ai.openai.api_key", "")
	v.SetDefault("ai.openai.model", "gpt-4o-mini")
	v.SetDefault("ai.openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.openai.enabled", true)

	v.SetDefault("ai.gemini.api_key", "")
	v.SetDefault("ai.gemini.model", "gemini-1.5-flash")
	v.SetDefault("ai.gemini.base_url", "")
	v.SetDefault("ai.gemini.enabled", true)

	v.SetDefault("generation.daily_limit", 10)
	v.SetDefault("generation.max_words", 120)

	v.SetDefault("database.path", "")
	v.SetDefault("server.addr", ":8080")

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# Proposly Configuration
ai:
  # AI Provider: claude, openai, gemini
  default_provider: claude
  temperature: 0.4
  timeout: 30s
  # API Keys (keep this file secure!)
  claude:
    api_key: ""
    model: claude-3-5-sonnet-20241022
    enabled: true
  openai:
    api_key: ""
    model: gpt-4o-mini
    enabled: true
  gemini:
    api_key: ""
    model: gemini-1.5-flash
    enabled: true

generation:
  daily_limit: 10

server:
  addr: ":8080"

log:
  json: false
  debug: false
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Set updates a configuration value in the file at path
func Set(path, key, value string) error {
	if path == "" {
		path = GetConfigPath()
	}

	valid := false
	for _, k := range ValidKeys {
		if k == key {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid key %q, must be one of: %v", key, ValidKeys)
	}

	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	v.Set(key, value)
	return v.WriteConfig()
}
