package enhance

import (
	"context"
	"errors"
	"strings"
	"time"

	"resume-tailor-backend/internal/llm"
	"resume-tailor-backend/internal/shared/metrics"
	"resume-tailor-backend/internal/shared/telemetry"
)

const rawReplyLogLimit = 200

// Service contains business logic for resume enhancement.
type Service struct {
	LLM   llm.Client
	Model string
}

// Enhance runs one validate-prompt-generate-parse exchange. It returns both
// the typed result and the raw model reply so the handler can serve either
// transport.
func (s *Service) Enhance(ctx context.Context, requestID string, req EnhancementRequest) (EnhancementResult, string, error) {
	if err := Validate(req.ResumeSource, req.JobDescription); err != nil {
		return EnhancementResult{}, "", err
	}
	if s.LLM == nil {
		return EnhancementResult{}, "", ErrNotConfigured
	}

	metrics.IncEnhancementStarted()
	start := time.Now()

	prompt := BuildPrompt(req.ResumeSource, req.JobDescription)
	client := newRetryingLLM(s.LLM, requestID)

	raw, err := client.Generate(ctx, prompt)
	if err != nil {
		metrics.IncEnhancementFailed()
		telemetry.Error("enhance.generate_failed", telemetry.Fields{
			"request_id": requestID,
			"model":      s.Model,
			"error":      sanitizeError(err),
		})
		return EnhancementResult{}, "", err
	}

	result, err := Parse(raw)
	if err != nil {
		metrics.IncEnhancementFailed()
		// The raw reply is diagnosis material; escape it so the log
		// line stays a single parseable record.
		telemetry.Error("enhance.parse_failed", telemetry.Fields{
			"request_id": requestID,
			"model":      s.Model,
			"error":      sanitizeError(err),
			"raw_reply":  Escape(truncate(raw, rawReplyLogLimit)),
		})
		return EnhancementResult{}, "", err
	}

	metrics.IncEnhancementCompleted()
	metrics.ObserveEnhancementDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	telemetry.Info("enhance.complete", telemetry.Fields{
		"request_id":     requestID,
		"model":          s.Model,
		"match_score":    result.MatchScore,
		"enhanced_parts": len(result.EnhancedParts),
		"removed_parts":  len(result.RemovedParts),
		"duration_ms":    float64(time.Since(start).Microseconds()) / 1000.0,
	})
	return result, raw, nil
}

// IsValidationError reports whether err is a client input rejection.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// IsMalformedResponse reports whether err is a structurally unusable reply.
func IsMalformedResponse(err error) bool {
	var mErr *MalformedResponseError
	return errors.As(err, &mErr)
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
