package enhance

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"resume-tailor-backend/internal/llm"
)

type stubLLM struct {
	replies []stubReply
	calls   int
}

type stubReply struct {
	text string
	err  error
}

func (s *stubLLM) Generate(ctx context.Context, prompt string) (string, error) {
	idx := s.calls
	if idx >= len(s.replies) {
		idx = len(s.replies) - 1
	}
	s.calls++
	reply := s.replies[idx]
	return reply.text, reply.err
}

func unavailableErr() error {
	return &llm.StatusError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE", Message: "service unavailable"}
}

func newTestRetrier(base llm.Client) (retryingLLM, *[]time.Duration) {
	delays := &[]time.Duration{}
	r := newRetryingLLM(base, "req-1")
	r.sleep = func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
	return r, delays
}

func TestRetryTransientThenSuccess(t *testing.T) {
	stub := &stubLLM{replies: []stubReply{
		{err: unavailableErr()},
		{err: unavailableErr()},
		{text: "ok"},
	}}
	r, delays := newTestRetrier(stub)

	reply, err := r.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply != "ok" {
		t.Fatalf("expected ok, got %q", reply)
	}
	if stub.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", stub.calls)
	}
	if len(*delays) != 2 {
		t.Fatalf("expected 2 backoff delays, got %d", len(*delays))
	}
	if (*delays)[0] < 1000*time.Millisecond {
		t.Fatalf("expected first delay >= 1000ms, got %v", (*delays)[0])
	}
	if (*delays)[1] < 2000*time.Millisecond {
		t.Fatalf("expected second delay >= 2000ms, got %v", (*delays)[1])
	}
}

func TestRetryRateLimitedIsTransient(t *testing.T) {
	stub := &stubLLM{replies: []stubReply{
		{err: &llm.StatusError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED", Message: "quota"}},
		{text: "ok"},
	}}
	r, delays := newTestRetrier(stub)

	reply, err := r.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply != "ok" {
		t.Fatalf("expected ok, got %q", reply)
	}
	if len(*delays) != 1 {
		t.Fatalf("expected 1 delay, got %d", len(*delays))
	}
}

func TestNoRetryOnPermanentError(t *testing.T) {
	permanent := &llm.StatusError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT", Message: "bad prompt"}
	stub := &stubLLM{replies: []stubReply{{err: permanent}, {text: "never"}}}
	r, delays := newTestRetrier(stub)

	_, err := r.Generate(context.Background(), "prompt")
	if !errors.Is(err, permanent) {
		t.Fatalf("expected permanent error to propagate, got %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected single attempt, got %d", stub.calls)
	}
	if len(*delays) != 0 {
		t.Fatalf("expected no delays, got %d", len(*delays))
	}
}

func TestNoRetryOnPlainError(t *testing.T) {
	plain := errors.New("connection reset")
	stub := &stubLLM{replies: []stubReply{{err: plain}, {text: "never"}}}
	r, delays := newTestRetrier(stub)

	_, err := r.Generate(context.Background(), "prompt")
	if !errors.Is(err, plain) {
		t.Fatalf("expected error to propagate, got %v", err)
	}
	if stub.calls != 1 || len(*delays) != 0 {
		t.Fatalf("expected single attempt and no delays, got %d/%d", stub.calls, len(*delays))
	}
}

func TestRetryExhaustionPropagatesLastError(t *testing.T) {
	stub := &stubLLM{replies: []stubReply{
		{err: unavailableErr()},
		{err: unavailableErr()},
		{err: unavailableErr()},
		{err: unavailableErr()},
	}}
	r, delays := newTestRetrier(stub)

	_, err := r.Generate(context.Background(), "prompt")
	if !llm.IsTransient(err) {
		t.Fatalf("expected last transient error to propagate, got %v", err)
	}
	if stub.calls != 4 {
		t.Fatalf("expected initial attempt plus 3 retries, got %d", stub.calls)
	}
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	if len(*delays) != len(want) {
		t.Fatalf("expected %d delays, got %d", len(want), len(*delays))
	}
	for i, d := range want {
		if (*delays)[i] != d {
			t.Fatalf("delay %d: expected %v, got %v", i, d, (*delays)[i])
		}
	}
}

func TestRetryStopsOnCanceledContext(t *testing.T) {
	stub := &stubLLM{replies: []stubReply{{err: unavailableErr()}, {text: "never"}}}
	r := newRetryingLLM(stub, "req-1")
	r.sleep = func(ctx context.Context, d time.Duration) error {
		return context.Canceled
	}

	_, err := r.Generate(context.Background(), "prompt")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected no further attempts after cancel, got %d", stub.calls)
	}
}
