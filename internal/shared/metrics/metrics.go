package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	enhancementStartedTotal   atomic.Uint64
	enhancementCompletedTotal atomic.Uint64
	enhancementFailedTotal    atomic.Uint64
	scoreDefaultedTotal       atomic.Uint64
	llmRetryTotal             atomic.Uint64

	enhancementDuration = newHistogram([]float64{250, 500, 1000, 2500, 5000, 10000, 30000, 60000, 120000, 300000})
)

// IncEnhancementStarted increments the started counter.
func IncEnhancementStarted() {
	enhancementStartedTotal.Add(1)
}

// IncEnhancementCompleted increments the completed counter.
func IncEnhancementCompleted() {
	enhancementCompletedTotal.Add(1)
}

// IncEnhancementFailed increments the failed counter.
func IncEnhancementFailed() {
	enhancementFailedTotal.Add(1)
}

// IncScoreDefaulted counts replies whose match score could not be parsed and
// was coerced to zero.
func IncScoreDefaulted() {
	scoreDefaultedTotal.Add(1)
}

// IncLLMRetry counts retried generation attempts.
func IncLLMRetry() {
	llmRetryTotal.Add(1)
}

// ObserveEnhancementDurationMs records an end-to-end enhancement duration.
func ObserveEnhancementDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	enhancementDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "enhancement_started_total", "Total enhancements started", enhancementStartedTotal.Load())
	writeCounter(&buf, "enhancement_completed_total", "Total enhancements completed", enhancementCompletedTotal.Load())
	writeCounter(&buf, "enhancement_failed_total", "Total enhancements failed", enhancementFailedTotal.Load())
	writeCounter(&buf, "enhancement_score_defaulted_total", "Replies with unparsable match score coerced to zero", scoreDefaultedTotal.Load())
	writeCounter(&buf, "llm_retry_total", "Total retried LLM generation attempts", llmRetryTotal.Load())
	writeHistogram(&buf, "enhancement_duration_ms", "Enhancement duration in milliseconds", enhancementDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: append([]float64(nil), buckets...),
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
	h.sum += value
	h.count++
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
