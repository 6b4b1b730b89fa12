// Package jobfetch loads job postings from the web with headless Chrome.
package jobfetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/khrees2412/proposly/internal/apperr"
	"github.com/khrees2412/proposly/internal/logger"
)

const (
	pageLoadTimeout = 45 * time.Second
	// MaxDescriptionRunes caps the text handed to the analyzer and the prompt
	MaxDescriptionRunes = 8000
)

// descriptionSelectors are tried in order; the page body is the last resort
var descriptionSelectors = []string{
	`[data-test="Description"]`,
	`[data-test="job-description-text"]`,
	`.job-description`,
	`.jobs-description-content__text`,
	`.show-more-less-html__markup`,
	`#job-details`,
	`.description__text`,
	`main`,
}

// Fetcher loads job descriptions from posting URLs
type Fetcher struct {
	logger *zap.Logger
}

func NewFetcher(log *zap.Logger) *Fetcher {
	return &Fetcher{logger: logger.OrNop(log)}
}

// Fetch opens rawURL in a headless browser and returns the normalized text of
// the job description
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := ValidateURL(rawURL); err != nil {
		return "", err
	}

	ctx, cancel := f.browserContext(ctx)
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, pageLoadTimeout)
	defer cancel()

	var text string
	err := chromedp.Run(ctx,
		chromedp.Navigate(rawURL),
		chromedp.Sleep(3*time.Second), // Wait for client-side rendering
		chromedp.Evaluate(extractScript(), &text),
	)
	if err != nil {
		return "", fmt.Errorf("failed to load job posting: %w", err)
	}

	description := Normalize(text)
	if description == "" {
		return "", fmt.Errorf("%w: no job description found at %s", apperr.ErrValidation, rawURL)
	}

	f.logger.Debug("fetched job posting", zap.String("url", rawURL), zap.Int("chars", len(description)))
	return description, nil
}

func (f *Fetcher) browserContext(parent context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(parent, opts...)
	sugar := f.logger.Sugar()
	ctx, cancel2 := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, v ...interface{}) {
		msg := fmt.Sprintf(format, v...)
		// Protocol drift between Chrome and cdproto
		if strings.Contains(msg, "could not unmarshal event") {
			return
		}
		sugar.Debugf(format, v...)
	}))

	return ctx, func() {
		cancel2()
		cancel()
	}
}

// extractScript returns the innerText of the first non-empty description
// element, falling back to the document body
func extractScript() string {
	quoted := make([]string, 0, len(descriptionSelectors))
	for _, sel := range descriptionSelectors {
		quoted = append(quoted, "'"+strings.ReplaceAll(sel, "'", `\'`)+"'")
	}
	return `(() => {
		for (const sel of [` + strings.Join(quoted, ", ") + `]) {
			const el = document.querySelector(sel);
			if (el && el.innerText && el.innerText.trim().length > 0) {
				return el.innerText;
			}
		}
		return document.body ? document.body.innerText : "";
	})()`
}

// ValidateURL accepts absolute http and https URLs
func ValidateURL(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: invalid job URL %q", apperr.ErrValidation, rawURL)
	}
	return nil
}

// Normalize trims every line, collapses runs of blank lines and caps the
// result at MaxDescriptionRunes
func Normalize(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}

	result := strings.TrimSpace(strings.Join(out, "\n"))
	if runes := []rune(result); len(runes) > MaxDescriptionRunes {
		result = strings.TrimSpace(string(runes[:MaxDescriptionRunes]))
	}
	return result
}
