package sanitizer

import (
	"sync"
	"time"
)

// Clock returns the current time.
type Clock func() time.Time

// RateLimiter is a keyed sliding-window counter kept in process memory.
// It bounds abuse within a single running instance only.
type RateLimiter struct {
	mu        sync.Mutex
	now       Clock
	attempts  map[string][]time.Time
	lastSweep time.Time
}

// NewRateLimiter returns a limiter reading time from clock, or time.Now when
// clock is nil.
func NewRateLimiter(clock Clock) *RateLimiter {
	if clock == nil {
		clock = time.Now
	}
	return &RateLimiter{
		now:      clock,
		attempts: make(map[string][]time.Time),
	}
}

// IsAllowed records an attempt under key and reports whether the attempts
// inside the trailing window, this one included, stay within maxAttempts.
func (r *RateLimiter) IsAllowed(key string, maxAttempts int, window time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	cutoff := now.Add(-window)
	if now.Sub(r.lastSweep) >= window {
		r.sweep(cutoff)
		r.lastSweep = now
	}

	kept := r.attempts[key][:0]
	for _, t := range r.attempts[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	kept = append(kept, now)
	r.attempts[key] = kept

	return len(kept) <= maxAttempts
}

// sweep drops keys with no attempt after cutoff.
func (r *RateLimiter) sweep(cutoff time.Time) {
	for key, ts := range r.attempts {
		if len(ts) == 0 || !ts[len(ts)-1].After(cutoff) {
			delete(r.attempts, key)
		}
	}
}

// Clear forgets the history of key.
func (r *RateLimiter) Clear(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.attempts, key)
}
