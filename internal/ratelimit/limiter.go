// ABOUTME: Fixed-window per-identity rate limiter for inbound questions
// ABOUTME: In-memory counters with lazy sweep of expired windows
package ratelimit

import (
	"sync"
	"time"
)

// record is the per-identity counter for the current window.
type record struct {
	count   int
	resetAt time.Time
}

// Limiter allows up to ceiling requests per identity within each window.
// Counters live only in process memory and reset on restart.
type Limiter struct {
	ceiling int
	window  time.Duration

	mu        sync.Mutex
	records   map[string]*record
	lastSweep time.Time

	now func() time.Time
}

// NewLimiter creates a fixed-window limiter with the given ceiling and
// window length.
func NewLimiter(ceiling int, window time.Duration) *Limiter {
	return &Limiter{
		ceiling: ceiling,
		window:  window,
		records: make(map[string]*record),
		now:     time.Now,
	}
}

// Allow reports whether the identity may proceed, counting the call
// against its window. The first call in a window (including the first call
// after an expired window) starts a fresh count of 1.
func (l *Limiter) Allow(identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweepLocked(now)

	rec, ok := l.records[identity]
	if !ok || now.After(rec.resetAt) {
		l.records[identity] = &record{count: 1, resetAt: now.Add(l.window)}
		return true
	}
	if rec.count >= l.ceiling {
		return false
	}
	rec.count++
	return true
}

// sweepLocked drops expired records at most once per window length, so
// the map stays bounded by identities seen within the last window.
func (l *Limiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	for identity, rec := range l.records {
		if now.After(rec.resetAt) {
			delete(l.records, identity)
		}
	}
	l.lastSweep = now
}

// size returns the number of tracked identities. Test hook.
func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
