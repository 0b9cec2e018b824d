// ABOUTME: Unit tests for the fixed-window rate limiter
// ABOUTME: Covers ceiling enforcement, window reset, sweep, and concurrency
package ratelimit

import (
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(ceiling int, window time.Duration) (*Limiter, *fakeClock) {
	l := NewLimiter(ceiling, window)
	clock := newFakeClock()
	l.now = clock.Now
	return l, clock
}

func TestLimiter_FirstCallAllowed(t *testing.T) {
	l, _ := newTestLimiter(20, time.Hour)

	if !l.Allow("1.2.3.4") {
		t.Fatal("first call from a new identity was denied")
	}
	if got := l.records["1.2.3.4"].count; got != 1 {
		t.Errorf("count after first call = %d, want 1", got)
	}
}

func TestLimiter_CeilingEnforced(t *testing.T) {
	l, _ := newTestLimiter(2, time.Hour)

	want := []bool{true, true, false, false}
	for i, w := range want {
		if got := l.Allow("client"); got != w {
			t.Errorf("call %d: Allow() = %v, want %v", i+1, got, w)
		}
	}
}

func TestLimiter_WindowReset(t *testing.T) {
	l, clock := newTestLimiter(2, time.Hour)

	l.Allow("client")
	l.Allow("client")
	if l.Allow("client") {
		t.Fatal("third call within window was allowed")
	}

	clock.Advance(time.Hour + time.Minute)

	if !l.Allow("client") {
		t.Fatal("call after window expiry was denied")
	}
	if got := l.records["client"].count; got != 1 {
		t.Errorf("count after reset = %d, want 1 (reset, not increment)", got)
	}
}

func TestLimiter_IdentitiesIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Hour)

	if !l.Allow("a") {
		t.Fatal("first call from a denied")
	}
	if !l.Allow("b") {
		t.Fatal("first call from b denied despite a's exhausted window")
	}
	if l.Allow("a") {
		t.Fatal("second call from a allowed beyond ceiling")
	}
}

func TestLimiter_SweepDropsExpiredRecords(t *testing.T) {
	l, clock := newTestLimiter(20, time.Hour)

	for _, id := range []string{"a", "b", "c"} {
		l.Allow(id)
	}
	if got := l.size(); got != 3 {
		t.Fatalf("tracked identities = %d, want 3", got)
	}

	clock.Advance(2 * time.Hour)

	// A call from a new identity triggers the sweep; the stale records go.
	l.Allow("d")
	if got := l.size(); got != 1 {
		t.Errorf("tracked identities after sweep = %d, want 1", got)
	}
}

func TestLimiter_ConcurrentSameIdentity(t *testing.T) {
	l, _ := newTestLimiter(50, time.Hour)

	var wg sync.WaitGroup
	allowed := make(chan bool, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- l.Allow("burst")
		}()
	}
	wg.Wait()
	close(allowed)

	var n int
	for ok := range allowed {
		if ok {
			n++
		}
	}
	if n != 50 {
		t.Errorf("allowed %d concurrent calls, want exactly the ceiling 50", n)
	}
}
