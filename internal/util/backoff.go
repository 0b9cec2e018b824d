// ABOUTME: Backoff helper for optional retry of external API calls
// ABOUTME: Exponential growth with jitter, capped at a fixed ceiling
package util

import (
	"math/rand/v2"
	"time"
)

const maxBackoff = 30 * time.Second

// Backoff returns the delay before the given retry attempt: base doubled
// per attempt, capped, with +/-25% jitter. Attempt 0 means no delay.
func Backoff(base time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30
	}
	d := base << uint(attempt-1)
	if d > maxBackoff || d <= 0 {
		d = maxBackoff
	}
	jitter := time.Duration(rand.Int64N(int64(d)/2)) - d/4
	return d + jitter
}
