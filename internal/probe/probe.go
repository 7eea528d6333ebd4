// Package probe performs single HTTP reachability attempts.
//
// A probe is one timeout-governed HTTP request against one URL. The package
// knows nothing about retries or concurrency; it reports every outcome,
// including all failure modes, as an [Attempt] value and never returns an
// error to the caller.
package probe

import (
	"context"
	"net/http"
	"time"
)

// DefaultTimeout is the per-attempt deadline used when none is configured.
const DefaultTimeout = 5 * time.Second

// connection pooling limits to prevent resource exhaustion when probing many targets
const (
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultMaxConnsPerHost     = 10
	defaultIdleConnTimeout     = 60 * time.Second
)

// Attempt holds the outcome of a single probe against one URL.
//
// Exactly one of StatusCode and Failure is meaningful: a response within the
// deadline sets StatusCode, any transport-level error sets Failure (with Err
// preserving the underlying error for logging). Elapsed is measured from
// request send to response-header receipt; the body is never read, so the
// measurement is independent of payload size.
type Attempt struct {
	// StatusCode is the HTTP status code of the response.
	// Zero when the attempt failed before a response arrived.
	StatusCode int

	// Failure classifies the transport error when no response arrived.
	// Empty on success.
	Failure Classification

	// Err is the underlying error behind Failure. nil on success.
	Err error

	// Start is when the attempt began.
	Start time.Time

	// Elapsed is the wall time until headers arrived or the failure was
	// detected.
	Elapsed time.Duration
}

// OK reports whether the attempt received an HTTP response.
// Any status code counts; interpreting the code is the caller's concern.
func (a Attempt) OK() bool {
	return a.Failure == ""
}

// Prober issues single HTTP attempts with a fixed per-attempt deadline.
//
// The deadline is applied per request via context rather than as a global
// client timeout, so a caller-supplied context can still cancel earlier.
// Redirects are followed to the final response.
type Prober struct {
	client  *http.Client
	timeout time.Duration
	method  string
}

// Option is a functional option for configuring a [Prober].
type Option func(*Prober)

// WithTimeout sets the per-attempt deadline. Non-positive values are ignored
// and the default kept.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithMethod sets the HTTP method used for probes (GET or HEAD).
// Empty values are ignored and GET kept.
func WithMethod(method string) Option {
	return func(p *Prober) {
		if method != "" {
			p.method = method
		}
	}
}

// NewProber creates a [Prober].
//
// The client is configured with connection pooling limits so large target
// lists do not exhaust file descriptors.
func NewProber(opts ...Option) *Prober {
	p := &Prober{
		timeout: DefaultTimeout,
		method:  http.MethodGet,
		client: &http.Client{
			// no global timeout - the per-attempt context carries the deadline
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				MaxConnsPerHost:     defaultMaxConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Probe performs one HTTP request against url and returns the [Attempt].
//
// Probe always returns a populated Attempt; errors are classified into the
// Failure field rather than returned. A malformed URL fails at request
// construction and is classified like any other transport error.
func (p *Prober) Probe(ctx context.Context, url string) Attempt {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, p.method, url, nil)
	if err != nil {
		return Attempt{
			Failure: Classify(err),
			Err:     err,
			Start:   start,
			Elapsed: time.Since(start),
		}
	}

	resp, err := p.client.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		return Attempt{
			Failure: Classify(err),
			Err:     err,
			Start:   start,
			Elapsed: elapsed,
		}
	}
	_ = resp.Body.Close()

	return Attempt{
		StatusCode: resp.StatusCode,
		Start:      start,
		Elapsed:    elapsed,
	}
}

// Close closes all idle connections in the prober's connection pool.
//
// Safe to call multiple times. After Close, the prober remains usable but
// new connections will be established as needed.
func (p *Prober) Close() {
	if p == nil || p.client == nil {
		return
	}
	if transport, ok := p.client.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
