package enhance

import (
	"context"
	"time"

	"resume-tailor-backend/internal/llm"
	"resume-tailor-backend/internal/shared/metrics"
	"resume-tailor-backend/internal/shared/telemetry"
)

const (
	llmRetryBaseDelay = 1000 * time.Millisecond
	llmMaxRetries     = 3
)

// retryingLLM retries transient provider failures with exponential backoff.
// Retries are sequential; only service-unavailable and rate-limit statuses
// are retried, everything else propagates on the first attempt.
type retryingLLM struct {
	base      llm.Client
	requestID string
	sleep     func(ctx context.Context, d time.Duration) error
}

func newRetryingLLM(base llm.Client, requestID string) retryingLLM {
	return retryingLLM{
		base:      base,
		requestID: requestID,
		sleep:     sleepContext,
	}
}

func (r retryingLLM) Generate(ctx context.Context, prompt string) (string, error) {
	delay := llmRetryBaseDelay
	for attempt := 0; ; attempt++ {
		reply, err := r.base.Generate(ctx, prompt)
		if err == nil {
			return reply, nil
		}
		if !llm.IsTransient(err) || attempt >= llmMaxRetries {
			return "", err
		}

		metrics.IncLLMRetry()
		telemetry.Warn("llm.retry", telemetry.Fields{
			"request_id": r.requestID,
			"attempt":    attempt + 1,
			"delay_ms":   delay.Milliseconds(),
			"error":      sanitizeError(err),
		})
		if err := r.sleep(ctx, delay); err != nil {
			return "", err
		}
		delay *= 2
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ llm.Client = retryingLLM{}
