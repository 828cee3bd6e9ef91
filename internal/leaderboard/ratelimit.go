package leaderboard

import (
	"sync"
	"time"
)

// MaxScore is the largest score accepted for submission.
const MaxScore = 1_000_000

// ValidateScore reports whether score may be submitted.
func ValidateScore(score int) bool {
	return score >= 0 && score <= MaxScore
}

// RateLimiter allows at most limit calls in any sliding window.
type RateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	now    func() time.Time
	calls  []time.Time
}

// NewRateLimiter creates a limiter. now defaults to time.Now.
func NewRateLimiter(limit int, window time.Duration, now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{limit: limit, window: window, now: now}
}

// Allow records a call and reports whether it fits in the window.
// Rejected calls are not recorded.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.prune(now)
	if len(r.calls) >= r.limit {
		return false
	}
	r.calls = append(r.calls, now)
	return true
}

// Remaining returns how many calls the window still admits.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prune(r.now())
	return max(0, r.limit-len(r.calls))
}

func (r *RateLimiter) prune(now time.Time) {
	i := 0
	for i < len(r.calls) && now.Sub(r.calls[i]) >= r.window {
		i++
	}
	r.calls = r.calls[i:]
}
