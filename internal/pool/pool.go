// Package pool runs timeout-governed HTTP probes across a bounded set of
// concurrent workers.
//
// A [Pool] consumes a fixed batch of targets from a shared queue, resolves
// each one through a retry loop around a [Prober], and emits exactly one
// [Result] per target on an output channel. Completion order is unspecified;
// callers that need input order must reorder by [Target.Index].
package pool

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/ya3lm/Website-Status-Checker/internal/probe"
)

// Prober performs a single probe attempt against one URL.
//
// The production implementation is [probe.Prober]; tests substitute
// deterministic stubs via [ProbeFunc].
type Prober interface {
	Probe(ctx context.Context, url string) probe.Attempt
}

// ProbeFunc adapts a plain function to the [Prober] interface.
type ProbeFunc func(ctx context.Context, url string) probe.Attempt

// Probe calls f.
func (f ProbeFunc) Probe(ctx context.Context, url string) probe.Attempt {
	return f(ctx, url)
}

// Target is one URL to check, identified by its position in the input list.
//
// Index, not URL, is the target's identity: the same URL may legally appear
// at several positions and each occurrence is resolved independently.
type Target struct {
	// Index is the 0-based position in the original input list.
	Index int

	// URL is the target URL, taken as-is from the caller.
	URL string
}

// Result is the final outcome recorded for one [Target].
//
// Exactly one Result is produced per target. StatusCode and Failure carry
// the final attempt's outcome; Elapsed is that attempt's duration, not the
// sum across retries.
type Result struct {
	// Target identifies which input entry this result belongs to.
	Target Target

	// StatusCode is the HTTP status code of the final attempt.
	// Zero when every attempt failed.
	StatusCode int

	// Failure classifies the final attempt's error when all attempts failed.
	// Empty on success.
	Failure probe.Classification

	// Err is the underlying error of the final failed attempt. nil on success.
	Err error

	// Elapsed is the duration of the attempt that produced the final status.
	Elapsed time.Duration

	// CheckedAt is when the target's attempt sequence finished.
	CheckedAt time.Time

	// Attempts is the number of probe attempts actually made.
	Attempts int
}

// OK reports whether the target received an HTTP response.
func (r Result) OK() bool {
	return r.Failure == ""
}

// Config carries the knobs for a [Pool].
type Config struct {
	// Workers is the number of concurrent workers. Values below 1 are
	// clamped to 1.
	Workers int

	// Retries is the number of additional attempts after a failure.
	// Zero means a single attempt per target.
	Retries int

	// Backoff computes the delay between attempts for one target.
	// nil means a fixed delay of [DefaultBackoff].
	Backoff Backoff

	// Limiter, when non-nil, rate-limits probe attempts globally across
	// all workers.
	Limiter *rate.Limiter

	// Logger receives worker lifecycle events. nil means slog.Default().
	Logger *slog.Logger
}

// Pool dispatches a batch of targets over a fixed number of workers.
//
// The pool is single-use: create one per batch with [New] and run it with
// [Pool.Run]. There is no dynamic resizing; the worker count is fixed for
// the lifetime of the batch.
type Pool struct {
	prober  Prober
	workers int
	retries int
	backoff Backoff
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New creates a [Pool] using prober for individual attempts.
func New(prober Prober, cfg Config) *Pool {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	retries := cfg.Retries
	if retries < 0 {
		retries = 0
	}

	backoff := cfg.Backoff
	if backoff == nil {
		backoff = FixedBackoff(DefaultBackoff)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pool{
		prober:  prober,
		workers: workers,
		retries: retries,
		backoff: backoff,
		limiter: cfg.Limiter,
		logger:  logger,
	}
}

// Workers returns the effective worker count after clamping.
func (p *Pool) Workers() int {
	return p.workers
}

// Run resolves all targets and returns the channel results arrive on.
//
// Run is non-blocking: it queues the whole batch, starts the workers, and
// returns immediately. The returned channel is buffered to hold every
// result, so no worker ever blocks on output and exactly one [Result] per
// target is always delivered. The channel is closed once all workers have
// exited, which happens only after the queue is drained and every in-flight
// attempt sequence has finished.
//
// Cancelling ctx aborts in-flight probes through their own deadlines and
// stops retry loops at the next inter-attempt wait; affected targets are
// still reported, with their last observed failure.
func (p *Pool) Run(ctx context.Context, targets []Target) <-chan Result {
	jobs := make(chan Target, len(targets))
	for _, t := range targets {
		jobs <- t
	}
	close(jobs)

	out := make(chan Result, len(targets))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p.logger.Debug("worker started", "worker", id)
			for t := range jobs {
				out <- p.resolve(ctx, t)
			}
			p.logger.Debug("worker exiting", "worker", id)
		}(i)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
