package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// cooldownEntryTTL bounds how long an idle identifier stays in memory.
	cooldownEntryTTL = 5 * time.Minute
	// cooldownSweepInterval is how often expired identifiers are pruned.
	// Entries may survive up to one full interval past their TTL; the
	// sweep is a memory bound, not a precise expiry.
	cooldownSweepInterval = time.Minute
)

// CooldownLimiter enforces a single-attempt-per-identifier cooldown window.
// It is safe for concurrent use.
type CooldownLimiter struct {
	mu          sync.Mutex
	cooldown    time.Duration
	lastAttempt map[string]time.Time
	now         func() time.Time
}

// NewCooldownLimiter constructs a CooldownLimiter with the given window.
func NewCooldownLimiter(cooldown time.Duration, now func() time.Time) *CooldownLimiter {
	if now == nil {
		now = time.Now
	}
	if cooldown <= 0 {
		cooldown = 5 * time.Second
	}
	return &CooldownLimiter{
		cooldown:    cooldown,
		lastAttempt: make(map[string]time.Time),
		now:         now,
	}
}

// Allow records an attempt for the identifier and reports whether it falls
// outside the cooldown window. Rejected attempts do not reset the window.
func (l *CooldownLimiter) Allow(identifier string) (bool, time.Duration) {
	if l == nil {
		return true, 0
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	if last, ok := l.lastAttempt[identifier]; ok {
		if elapsed := now.Sub(last); elapsed < l.cooldown {
			return false, l.cooldown - elapsed
		}
	}
	l.lastAttempt[identifier] = now
	return true, 0
}

// Sweep removes identifiers idle longer than the entry TTL and returns how
// many were pruned.
func (l *CooldownLimiter) Sweep() int {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	pruned := 0
	for id, last := range l.lastAttempt {
		if now.Sub(last) > cooldownEntryTTL {
			delete(l.lastAttempt, id)
			pruned++
		}
	}
	return pruned
}

// StartSweeper prunes expired entries on a fixed cadence until ctx is done.
func (l *CooldownLimiter) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(cooldownSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.Sweep()
			}
		}
	}()
}

// Cooldown rejects requests from an identifier that attempted within the
// limiter's cooldown window.
func Cooldown(limiter *CooldownLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := strings.TrimSpace(UserIDFromContext(c))
		if identifier == "" {
			identifier = strings.TrimSpace(c.ClientIP())
		}
		allowed, retryAfter := limiter.Allow(identifier)
		if allowed {
			c.Next()
			return
		}
		retryAfterMs := int(retryAfter / time.Millisecond)
		if retryAfterMs <= 0 {
			retryAfterMs = 1000
		}
		retryAfterSeconds := int(math.Ceil(float64(retryAfterMs) / 1000.0))
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":        "rate_limited",
			"retryAfterMs": retryAfterMs,
		})
		c.Abort()
	}
}
