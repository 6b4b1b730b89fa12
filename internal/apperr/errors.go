package apperr

import (
	"errors"
	"net/http"
)

// Sentinel errors for the proposal pipeline
var (
	ErrValidation          = errors.New("validation failed")
	ErrQuotaExceeded       = errors.New("daily proposal generation limit reached, please try again tomorrow")
	ErrProviderUnavailable = errors.New("no AI provider configured")
	ErrGenerationFailed    = errors.New("failed to generate proposal")
	ErrDuplicateFeedback   = errors.New("feedback already submitted for this proposal")
	ErrNotFound            = errors.New("not found")
)

// HTTPStatus maps an error to the status code the API responds with
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateFeedback):
		return http.StatusConflict
	case errors.Is(err, ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrGenerationFailed):
		return http.StatusBadGateway
	case errors.Is(err, ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Code returns a short machine-readable code for an error
func Code(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicateFeedback):
		return "duplicate_feedback"
	case errors.Is(err, ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, ErrGenerationFailed):
		return "generation_failed"
	case errors.Is(err, ErrProviderUnavailable):
		return "provider_unavailable"
	default:
		return "internal_error"
	}
}
