package jobfetch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/khrees2412/proposly/internal/apperr"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims lines", "  Senior   Laravel dev  \n\tRemote ", "Senior Laravel dev\nRemote"},
		{"collapses blank runs", "About\n\n\n\nRequirements", "About\n\nRequirements"},
		{"windows newlines", "a\r\nb", "a\nb"},
		{"leading blanks", "\n\n  \nStart", "Start"},
		{"empty", "   \n \n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeCapsLength(t *testing.T) {
	got := Normalize(strings.Repeat("é", MaxDescriptionRunes+50))
	if n := len([]rune(got)); n != MaxDescriptionRunes {
		t.Errorf("expected %d runes, got %d", MaxDescriptionRunes, n)
	}
}

func TestValidateURL(t *testing.T) {
	valid := []string{"https://www.upwork.com/jobs/~01abc", "http://example.com/job/1"}
	invalid := []string{"", "upwork.com/jobs/1", "ftp://example.com/job", "https://", "javascript:alert(1)"}

	for _, u := range valid {
		if err := ValidateURL(u); err != nil {
			t.Errorf("ValidateURL(%q) = %v", u, err)
		}
	}
	for _, u := range invalid {
		if err := ValidateURL(u); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("ValidateURL(%q) = %v, want ErrValidation", u, err)
		}
	}
}

func TestFetchRejectsInvalidURLWithoutBrowser(t *testing.T) {
	_, err := NewFetcher(nil).Fetch(context.Background(), "not a url")
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestExtractScriptListsSelectors(t *testing.T) {
	script := extractScript()
	for _, sel := range descriptionSelectors {
		if !strings.Contains(script, strings.ReplaceAll(sel, "'", `\'`)) {
			t.Errorf("script missing selector %s", sel)
		}
	}
}
