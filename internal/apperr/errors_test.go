package apperr

import (
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
		code     string
	}{
		{"validation", fmt.Errorf("%w: job description is required", ErrValidation), http.StatusBadRequest, "validation_error"},
		{"not found", fmt.Errorf("proposal 4: %w", ErrNotFound), http.StatusNotFound, "not_found"},
		{"duplicate", ErrDuplicateFeedback, http.StatusConflict, "duplicate_feedback"},
		{"quota", ErrQuotaExceeded, http.StatusTooManyRequests, "quota_exceeded"},
		{"generation", fmt.Errorf("%w: timeout", ErrGenerationFailed), http.StatusBadGateway, "generation_failed"},
		{"unknown", fmt.Errorf("disk full"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.expected {
				t.Errorf("HTTPStatus() = %d, expected %d", got, tt.expected)
			}
			if got := Code(tt.err); got != tt.code {
				t.Errorf("Code() = %q, expected %q", got, tt.code)
			}
		})
	}
}
