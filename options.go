package statuschecker

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/ya3lm/Website-Status-Checker/internal/pool"
)

// checkerConfig holds mutable state during Checker construction.
type checkerConfig struct {
	workers  int
	timeout  time.Duration
	retries  int
	backoff  pool.Backoff
	method   string
	limiter  *rate.Limiter
	logger   *slog.Logger
	progress []func(Result)
}

// Option is a function that configures a [Checker] instance during
// construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithWorkers], [WithTimeout], [WithRetries],
// [WithBackoff], [WithBackoffStrategy], [WithMethod], [WithRateLimit],
// [WithLogger], [WithProgress].
type Option func(*checkerConfig) error

// WithWorkers sets the number of concurrent workers for each batch.
//
// Values below 1 are clamped to 1 rather than rejected, so a zero worker
// count still runs the batch sequentially. A worker count larger than the
// target list is harmless; excess workers exit immediately.
// Defaults to runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(cfg *checkerConfig) error {
		if n < 1 {
			n = 1
		}
		cfg.workers = n
		return nil
	}
}

// WithTimeout sets the hard deadline for each individual probe attempt.
// Defaults to 5 seconds.
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *checkerConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithRetries sets how many additional attempts are made after a failed
// probe. Zero means exactly one attempt per target. Defaults to 0.
//
// Returns an error if n is negative.
func WithRetries(n int) Option {
	return func(cfg *checkerConfig) error {
		if n < 0 {
			return errors.New("retries cannot be negative")
		}
		cfg.retries = n
		return nil
	}
}

// WithBackoff sets a fixed delay between attempts for the same target.
// Defaults to 100ms. A zero delay retries immediately.
//
// Returns an error if the duration is negative.
func WithBackoff(d time.Duration) Option {
	return func(cfg *checkerConfig) error {
		if d < 0 {
			return errors.New("backoff cannot be negative")
		}
		cfg.backoff = pool.FixedBackoff(d)
		return nil
	}
}

// WithBackoffStrategy sets a custom per-attempt backoff function, such as
// [ExponentialBackoff]. Overrides [WithBackoff].
//
// Returns an error if fn is nil.
func WithBackoffStrategy(fn BackoffStrategy) Option {
	return func(cfg *checkerConfig) error {
		if fn == nil {
			return errors.New("backoff strategy cannot be nil")
		}
		cfg.backoff = pool.Backoff(fn)
		return nil
	}
}

// BackoffStrategy computes the delay after a failed attempt; the argument
// is the 0-based index of the attempt that just failed.
type BackoffStrategy func(attempt int) time.Duration

// ExponentialBackoff returns a [BackoffStrategy] that doubles the delay
// after each failed attempt, starting at base and capped at max.
func ExponentialBackoff(base, max time.Duration) BackoffStrategy {
	return BackoffStrategy(pool.ExponentialBackoff(base, max))
}

// WithMethod sets the HTTP method used for probes. Only GET and HEAD are
// accepted. Defaults to GET.
func WithMethod(method string) Option {
	return func(cfg *checkerConfig) error {
		if method != http.MethodGet && method != http.MethodHead {
			return fmt.Errorf("method must be GET or HEAD, got %q", method)
		}
		cfg.method = method
		return nil
	}
}

// WithRateLimit caps the global rate of probe attempts across all workers
// at perSecond attempts per second, with a burst of one.
//
// Returns an error if perSecond is zero or negative.
func WithRateLimit(perSecond float64) Option {
	return func(cfg *checkerConfig) error {
		if perSecond <= 0 {
			return errors.New("rate limit must be positive")
		}
		cfg.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		return nil
	}
}

// WithLogger sets the logger used for batch and worker events.
// Defaults to slog.Default().
//
// Returns an error if logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *checkerConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithProgress registers a callback invoked once per [Result] as it
// completes, in completion order, for live display.
//
// Callbacks run on the collection goroutine behind a panic recovery
// boundary; a panicking callback is logged and skipped without affecting
// the report. Can be called multiple times to register several callbacks.
//
// Returns an error if fn is nil.
func WithProgress(fn func(Result)) Option {
	return func(cfg *checkerConfig) error {
		if fn == nil {
			return errors.New("progress callback cannot be nil")
		}
		cfg.progress = append(cfg.progress, fn)
		return nil
	}
}
