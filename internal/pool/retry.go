package pool

import (
	"context"
	"time"

	"github.com/ya3lm/Website-Status-Checker/internal/probe"
)

// resolve runs the full attempt sequence for one target and folds it into
// a [Result].
//
// Attempts for a target are strictly sequential: the loop probes, stops on
// the first HTTP response or once retries are exhausted, and otherwise waits
// out the backoff delay before trying again. The final attempt - successful
// or not - supplies the result's status and elapsed time.
func (p *Pool) resolve(ctx context.Context, t Target) Result {
	var att probe.Attempt
	attempts := 0

	for attempt := 0; ; attempt++ {
		if p.limiter != nil {
			// a cancelled wait falls through to the probe, which fails
			// immediately with the context error
			_ = p.limiter.Wait(ctx)
		}

		att = p.prober.Probe(ctx, t.URL)
		attempts++

		if att.OK() || attempt >= p.retries {
			break
		}
		if !sleep(ctx, p.backoff(attempt)) {
			break
		}
	}

	return Result{
		Target:     t,
		StatusCode: att.StatusCode,
		Failure:    att.Failure,
		Err:        att.Err,
		Elapsed:    att.Elapsed,
		CheckedAt:  time.Now(),
		Attempts:   attempts,
	}
}

// sleep waits for d or until ctx is cancelled, reporting whether the full
// delay elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
