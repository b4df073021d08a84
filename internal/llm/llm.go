package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Client abstracts LLM providers for resume enhancement.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// StatusError carries the provider's structured status for a failed call.
// Retry classification matches on Code, never on message text.
type StatusError struct {
	Code    int
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm provider error: %d %s: %s", e.Code, e.Status, e.Message)
}

// IsTransient reports whether err is a retriable upstream condition:
// service unavailable or provider rate limiting. Everything else,
// including client errors and timeouts, is permanent.
func IsTransient(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	switch statusErr.Code {
	case http.StatusServiceUnavailable, http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}

// IsRateLimited reports whether err is the provider's quota or rate-limit
// signal, used to pick the outward status once retries are exhausted.
func IsRateLimited(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == http.StatusTooManyRequests
}
