// Package statuschecker checks the reachability and latency of lists of
// HTTP(S) endpoints concurrently.
//
// The package is designed as an SDK-first library: a [Checker] runs one
// bounded batch per call, dispatching target URLs across a fixed worker
// pool, retrying transient failures with configurable backoff, streaming
// per-target results to an optional progress callback, and returning an
// aggregated [Report] ordered by input position regardless of completion
// order. It is a batch tool, not a daemon; each run terminates once every
// target has exactly one result.
//
// # Quick Start
//
// Create a checker and run a batch:
//
//	c, _ := statuschecker.New(
//	    statuschecker.WithWorkers(8),
//	    statuschecker.WithTimeout(5 * time.Second),
//	    statuschecker.WithRetries(2),
//	)
//
//	report, err := c.Run(ctx, []string{
//	    "https://example.com",
//	    "https://api.example.com/health",
//	})
//	if err != nil {
//	    // only internal scheduling defects reach here; network failures
//	    // are recorded per-target inside the report
//	    log.Fatal(err)
//	}
//	report.WriteJSON(os.Stdout)
//
// # Configuration
//
// The checker uses the functional options pattern for configuration:
//
//	c, err := statuschecker.New(
//	    statuschecker.WithWorkers(16),
//	    statuschecker.WithRetries(3),
//	    statuschecker.WithBackoffStrategy(statuschecker.ExponentialBackoff(100*time.Millisecond, 2*time.Second)),
//	    statuschecker.WithRateLimit(50),
//	    statuschecker.WithProgress(func(r statuschecker.Result) {
//	        fmt.Printf("%s - %s in %dms\n", r.URL, r.Status, r.ResponseTime.Milliseconds())
//	    }),
//	)
//
// # Failure Handling
//
// A target that never responds does not abort the batch. Its transport
// errors are classified ([FailureDNS], [FailureConnect], [FailureTLS],
// [FailureTimeout], [FailureOther]) and the last attempt's classification
// becomes the target's [Status]. The report always contains one entry per
// input URL; only an internal scheduling defect ([ErrDuplicateResult],
// [ErrIncompleteBatch]) prevents report emission.
//
// # Architecture
//
// The library consists of two internal packages:
//
//   - internal/probe: single timeout-governed HTTP attempts with transport
//     error classification
//   - internal/pool: the bounded worker pool and per-target retry loop
//
// The internal packages are not part of the public API and may change
// without notice. A standalone CLI built on this package lives under
// cmd/website-checker.
package statuschecker
