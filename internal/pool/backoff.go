package pool

import "time"

// DefaultBackoff is the fixed inter-attempt delay used when none is configured.
const DefaultBackoff = 100 * time.Millisecond

// Backoff computes the delay to wait after a failed attempt before the next
// one. The argument is the 0-based index of the attempt that just failed.
//
// A Backoff must be safe for concurrent use; workers for different targets
// may consult it at the same time.
type Backoff func(attempt int) time.Duration

// FixedBackoff returns a [Backoff] that always waits d.
func FixedBackoff(d time.Duration) Backoff {
	return func(int) time.Duration {
		return d
	}
}

// ExponentialBackoff returns a [Backoff] that doubles the delay after each
// failed attempt, starting at base and never exceeding max.
func ExponentialBackoff(base, max time.Duration) Backoff {
	return func(attempt int) time.Duration {
		d := base
		for i := 0; i < attempt; i++ {
			d *= 2
			if d >= max {
				return max
			}
		}
		if d > max {
			return max
		}
		return d
	}
}
