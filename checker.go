package statuschecker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/ya3lm/Website-Status-Checker/internal/pool"
	"github.com/ya3lm/Website-Status-Checker/internal/probe"
)

const (
	defaultTimeout = 5 * time.Second
	defaultRetries = 0
)

var (
	// ErrDuplicateResult reports that the worker pool produced more than
	// one result for the same target position. This is an internal
	// scheduling defect, never a network condition.
	ErrDuplicateResult = errors.New("duplicate result for target")

	// ErrIncompleteBatch reports that the result stream closed before one
	// result per target had arrived. This is an internal scheduling
	// defect, never a network condition.
	ErrIncompleteBatch = errors.New("result stream closed before batch completed")
)

// Checker runs bounded-concurrency reachability batches over lists of URLs.
//
// A Checker is created with [New] using functional options and is safe to
// reuse across batches; each call to [Checker.Run] is one independent batch.
//
// The typical lifecycle is:
//
//	c, err := statuschecker.New(
//	    statuschecker.WithWorkers(8),
//	    statuschecker.WithRetries(2),
//	)
//	if err != nil {
//	    slog.Error("failed to create checker", "error", err)
//	    os.Exit(1)
//	}
//
//	report, err := c.Run(ctx, urls)
type Checker struct {
	workers  int
	timeout  time.Duration
	retries  int
	backoff  pool.Backoff
	method   string
	limiter  *rate.Limiter
	logger   *slog.Logger
	progress []func(Result)

	// prober overrides the HTTP prober; tests inject deterministic stubs.
	prober pool.Prober
}

// New creates a [Checker] with the given options.
//
// Options have sensible defaults:
//   - Workers: runtime.NumCPU()
//   - Timeout: 5 seconds per attempt
//   - Retries: 0 (a single attempt per target)
//   - Backoff: fixed 100ms between attempts
//
// Returns an error if any option is invalid.
func New(opts ...Option) (*Checker, error) {
	cfg := &checkerConfig{
		workers: runtime.NumCPU(),
		timeout: defaultTimeout,
		retries: defaultRetries,
		method:  http.MethodGet,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Checker{
		workers:  cfg.workers,
		timeout:  cfg.timeout,
		retries:  cfg.retries,
		backoff:  cfg.backoff,
		method:   cfg.method,
		limiter:  cfg.limiter,
		logger:   logger,
		progress: cfg.progress,
	}, nil
}

// Run checks every URL in urls and returns the aggregated [Report].
//
// Run blocks until the whole batch has completed. Per-target network
// failures never abort the batch; they are recorded in that target's
// [Result] and the report always carries exactly one entry per input URL,
// in input order. An empty input yields an empty report and no error.
//
// Cancelling ctx makes in-flight probes fail through their own deadlines
// and stops retry loops early; affected targets are reported with their
// last observed failure, so the report stays complete.
//
// The only error conditions are internal scheduling defects
// ([ErrDuplicateResult], [ErrIncompleteBatch]); under normal operation,
// including total network failure, Run returns a complete report and nil.
func (c *Checker) Run(ctx context.Context, urls []string) (*Report, error) {
	report := &Report{
		BatchID: uuid.NewString(),
		Started: time.Now(),
		Results: []Result{},
	}

	c.logger.Info("batch starting",
		"batch_id", report.BatchID,
		"targets", len(urls),
		"workers", c.workers,
	)

	if len(urls) == 0 {
		report.Finished = time.Now()
		c.logger.Info("batch complete", "batch_id", report.BatchID, "results", 0)
		return report, nil
	}

	prober := c.prober
	if prober == nil {
		p := probe.NewProber(
			probe.WithTimeout(c.timeout),
			probe.WithMethod(c.method),
		)
		defer p.Close()
		prober = p
	}

	targets := make([]pool.Target, len(urls))
	for i, u := range urls {
		targets[i] = pool.Target{Index: i, URL: u}
	}

	pl := pool.New(prober, pool.Config{
		Workers: c.workers,
		Retries: c.retries,
		Backoff: c.backoff,
		Limiter: c.limiter,
		Logger:  c.logger,
	})

	results, err := c.collect(pl.Run(ctx, targets), len(targets))
	if err != nil {
		return nil, err
	}

	report.Results = results
	report.Finished = time.Now()

	c.logger.Info("batch complete",
		"batch_id", report.BatchID,
		"results", len(results),
		"duration_ms", report.Finished.Sub(report.Started).Milliseconds(),
	)
	return report, nil
}

// collect drains the pool's output stream into an input-ordered slice.
//
// collect is the sole owner of the accumulating collection: workers hand
// over each result exactly once and never touch it again. Each arriving
// result is forwarded to the progress callbacks before being filed, so
// streaming display order follows completion order while the returned
// slice follows input order.
func (c *Checker) collect(stream <-chan pool.Result, n int) ([]Result, error) {
	ordered := make([]Result, n)
	seen := make([]bool, n)
	count := 0

	for count < n {
		pr, ok := <-stream
		if !ok {
			return nil, fmt.Errorf("%w: got %d of %d results", ErrIncompleteBatch, count, n)
		}

		idx := pr.Target.Index
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("%w: target index %d outside batch of %d", ErrDuplicateResult, idx, n)
		}
		if seen[idx] {
			return nil, fmt.Errorf("%w: target index %d (%s)", ErrDuplicateResult, idx, pr.Target.URL)
		}
		seen[idx] = true

		res := resultFromPool(pr)

		for _, cb := range c.progress {
			invokeProgressSafe(cb, res, c.logger)
		}

		// log each result (DEBUG level for success to reduce noise)
		logAttrs := []any{
			"url", res.URL,
			"status", res.Status.String(),
			"latency_ms", res.ResponseTime.Milliseconds(),
			"attempts", res.Attempts,
		}
		if res.Status.OK() {
			c.logger.Debug("target checked", logAttrs...)
		} else {
			c.logger.Warn("target unreachable", append(logAttrs, "error", errString(pr.Err))...)
		}

		ordered[idx] = res
		count++
	}

	return ordered, nil
}

// resultFromPool converts a pool result to the public type, moving the
// status into its tagged-variant form.
func resultFromPool(pr pool.Result) Result {
	status := Failed(Failure(pr.Failure))
	if pr.OK() {
		status = HTTPStatus(pr.StatusCode)
	}

	return Result{
		URL:          pr.Target.URL,
		Status:       status,
		ResponseTime: pr.Elapsed,
		CheckedAt:    pr.CheckedAt,
		Attempts:     pr.Attempts,
	}
}

// invokeProgressSafe calls a progress callback with panic recovery.
// Panics are logged with a correlation ID but do not propagate; a
// misbehaving callback cannot lose results or abort the batch.
func invokeProgressSafe(cb func(Result), result Result, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("progress callback panicked",
				"correlation_id", uuid.NewString(),
				"panic", r,
				"url", result.URL,
			)
		}
	}()
	cb(result)
}

// errString renders an error for logging, tolerating nil.
func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
