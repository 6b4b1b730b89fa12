package ai

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khrees2412/proposly/internal/apperr"
	"github.com/khrees2412/proposly/internal/config"
	"github.com/khrees2412/proposly/internal/logger"
)

// Gateway dispatches prompts to one of an ordered list of providers
type Gateway struct {
	providers   []Provider
	defaultName string
	demo        Provider
	timeout     time.Duration
	logger      *zap.Logger
}

// NewGateway builds a Gateway over providers, in fallback order. A nil demo
// means the built-in canned responses.
func NewGateway(providers []Provider, defaultName string, demo Provider, timeout time.Duration, log *zap.Logger) *Gateway {
	if demo == nil {
		demo = NewDemo(nil)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gateway{
		providers:   providers,
		defaultName: defaultName,
		demo:        demo,
		timeout:     timeout,
		logger:      logger.OrNop(log),
	}
}

// NewFromConfig builds the Claude, OpenAI and Gemini adapters in that order
func NewFromConfig(cfg config.AIConfig, log *zap.Logger) *Gateway {
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = DefaultTemperature
	}
	opts := Options{Temperature: temperature, MaxTokens: DefaultMaxTokens}
	geminiOpts := Options{Temperature: temperature, MaxTokens: DefaultGeminiMaxTokens}

	providers := []Provider{
		NewClaude(cfg.Claude, opts),
		NewOpenAI(cfg.OpenAI, opts),
		NewGemini(cfg.Gemini, geminiOpts),
	}
	return NewGateway(providers, cfg.DefaultProvider, nil, cfg.Timeout, log)
}

// Select picks the provider for a request: the requested one when
// configured, else the default when configured, else the first configured
// one. It returns nil when nothing is configured.
func Select(requested, defaultName string, providers []Provider) Provider {
	find := func(name string) Provider {
		if name == "" {
			return nil
		}
		for _, p := range providers {
			if p.Name() == name && p.Configured() {
				return p
			}
		}
		return nil
	}

	if p := find(requested); p != nil {
		return p
	}
	if p := find(defaultName); p != nil {
		return p
	}
	for _, p := range providers {
		if p.Configured() {
			return p
		}
	}
	return nil
}

// Generate runs prompt on the selected provider, or the demo responder when
// no provider is configured. It never returns a Go error.
func (g *Gateway) Generate(ctx context.Context, prompt, requested string) Result {
	p := Select(requested, g.defaultName, g.providers)
	if p == nil {
		g.logger.Warn("falling back to demo responses", zap.Error(apperr.ErrProviderUnavailable),
			zap.String("requested", requested))
		p = g.demo
	} else if requested != "" && p.Name() != requested {
		g.logger.Info("requested provider unavailable, using fallback",
			zap.String("requested", requested), zap.String(logger.FieldProvider, p.Name()))
	}

	log := logger.WithCommonFields(g.logger, p.Name(), p.Model())
	start := time.Now()
	res := g.call(ctx, p, prompt)
	if !res.Success {
		log.Error("generation failed", zap.String("error", res.Error), zap.Duration("elapsed", time.Since(start)))
		return res
	}

	log.Debug("generation completed",
		zap.Int("tokens_used", res.TokensUsed),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("preview", logger.TruncateForLog(res.Content, 80)))
	return res
}

// call invokes p with the gateway timeout, turning panics into failed results
func (g *Gateway) call(ctx context.Context, p Provider, prompt string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Success: false, ModelUsed: p.Model(), Provider: p.Name(),
				Error: fmt.Sprintf("provider panicked: %v", r)}
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	res = p.Generate(ctx, prompt)
	res.Provider = p.Name()
	return res
}

// ProviderStatus describes a registered provider
type ProviderStatus struct {
	Name       string `json:"name"`
	Model      string `json:"model"`
	Configured bool   `json:"configured"`
	Default    bool   `json:"default"`
}

// Providers lists the registered providers in fallback order
func (g *Gateway) Providers() []ProviderStatus {
	statuses := make([]ProviderStatus, 0, len(g.providers))
	for _, p := range g.providers {
		statuses = append(statuses, ProviderStatus{
			Name:       p.Name(),
			Model:      p.Model(),
			Configured: p.Configured(),
			Default:    p.Name() == g.defaultName,
		})
	}
	return statuses
}

func (g *Gateway) lookup(name string) Provider {
	for _, p := range g.providers {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// TestConnection sends a tiny request to the named provider
func (g *Gateway) TestConnection(ctx context.Context, name string) (err error) {
	p := g.lookup(name)
	if p == nil {
		return fmt.Errorf("provider %q: %w", name, apperr.ErrNotFound)
	}
	if !p.Configured() {
		return fmt.Errorf("provider %q: %w", name, apperr.ErrProviderUnavailable)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider %q panicked: %v", name, r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := p.TestConnection(ctx); err != nil {
		logger.WithCommonFields(g.logger, p.Name(), p.Model()).Warn("connection test failed", zap.Error(err))
		return fmt.Errorf("provider %q connection test failed: %w", name, err)
	}
	return nil
}

// Compare runs prompt on every configured provider concurrently. Results keep
// the provider order. With nothing configured it returns ErrProviderUnavailable.
func (g *Gateway) Compare(ctx context.Context, prompt string) ([]Result, error) {
	var configured []Provider
	for _, p := range g.providers {
		if p.Configured() {
			configured = append(configured, p)
		}
	}
	if len(configured) == 0 {
		return nil, apperr.ErrProviderUnavailable
	}

	results := make([]Result, len(configured))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, p := range configured {
		eg.Go(func() error {
			results[i] = g.call(egCtx, p, prompt)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
