package spotify

import (
	"math/rand"
	"time"
)

// Backoff is the retry policy for rate-limited Spotify calls: bounded
// attempts, exponential delay, a little jitter to avoid thundering herds.
type Backoff struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	JitterFraction float64
}

// DefaultBackoff returns the policy used in production.
func DefaultBackoff() Backoff {
	return Backoff{
		MaxAttempts:    4,
		BaseDelay:      500 * time.Millisecond,
		MaxDelay:       10 * time.Second,
		JitterFraction: 0.2,
	}
}

// Delay computes the wait before retry number attempt (0-based). A
// server-provided Retry-After always wins.
func (b Backoff) Delay(attempt int, retryAfter time.Duration) time.Duration {
	if retryAfter > 0 {
		return retryAfter
	}

	delay := b.BaseDelay << uint(attempt)
	if delay > b.MaxDelay || delay <= 0 {
		delay = b.MaxDelay
	}

	if b.JitterFraction > 0 {
		jitter := time.Duration((rand.Float64()*2 - 1) * b.JitterFraction * float64(delay))
		delay += jitter
	}
	if delay < 0 {
		delay = 0
	}
	return delay
}
