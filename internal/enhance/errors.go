package enhance

import (
	"errors"
	"fmt"
)

// ErrNotConfigured indicates the LLM provider is missing its API key.
var ErrNotConfigured = errors.New("llm client not configured")

// ValidationError reports a rejected input with the violated rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// MalformedResponseError indicates the model reply lacks required structure
// and no degraded result could be recovered.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %s", e.Reason)
}

const (
	ErrorCodeValidation  = "validation_error"
	ErrorCodeRateLimited = "rate_limited"
	ErrorCodeUpstream    = "upstream_error"
	ErrorCodeMalformed   = "enhancement_failed"
	ErrorCodeInternal    = "internal_error"
)
