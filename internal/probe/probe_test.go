package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestProber_Success verifies that a responding server yields a successful
// attempt carrying the HTTP status code and a positive elapsed time.
func TestProber_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := NewProber()
	att := p.Probe(context.Background(), server.URL)

	if !att.OK() {
		t.Fatalf("expected success, got failure %q (%v)", att.Failure, att.Err)
	}
	if att.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", att.StatusCode)
	}
	if att.Elapsed <= 0 {
		t.Errorf("expected positive elapsed time, got %v", att.Elapsed)
	}
	if att.Err != nil {
		t.Errorf("expected nil error on success, got %v", att.Err)
	}
}

// TestProber_AnyStatusCodeIsReachable verifies that non-2xx responses still
// count as successful attempts; interpreting the code is the caller's concern.
func TestProber_AnyStatusCodeIsReachable(t *testing.T) {
	codes := []int{200, 204, 404, 500, 503}

	for _, code := range codes {
		t.Run(http.StatusText(code), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(code)
			}))
			defer server.Close()

			p := NewProber()
			att := p.Probe(context.Background(), server.URL)

			if !att.OK() {
				t.Fatalf("expected success for %d, got failure %q", code, att.Failure)
			}
			if att.StatusCode != code {
				t.Errorf("expected status %d, got %d", code, att.StatusCode)
			}
		})
	}
}

// TestProber_FollowsRedirects verifies that redirects are followed to the
// final response.
func TestProber_FollowsRedirects(t *testing.T) {
	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer final.Close()

	redirecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final.URL, http.StatusFound)
	}))
	defer redirecting.Close()

	p := NewProber()
	att := p.Probe(context.Background(), redirecting.URL)

	if !att.OK() {
		t.Fatalf("expected success, got failure %q (%v)", att.Failure, att.Err)
	}
	if att.StatusCode != http.StatusOK {
		t.Errorf("expected final status 200 after redirect, got %d", att.StatusCode)
	}
}

// TestProber_Timeout verifies that a server slower than the deadline yields
// a timeout classification with elapsed time roughly at the deadline.
func TestProber_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	p := NewProber(WithTimeout(50 * time.Millisecond))
	att := p.Probe(context.Background(), server.URL)

	if att.OK() {
		t.Fatalf("expected failure, got status %d", att.StatusCode)
	}
	if att.Failure != FailureTimeout {
		t.Errorf("expected %q, got %q (%v)", FailureTimeout, att.Failure, att.Err)
	}
	if att.Elapsed < 50*time.Millisecond {
		t.Errorf("expected elapsed >= 50ms at the deadline, got %v", att.Elapsed)
	}
	if att.Err == nil {
		t.Error("expected underlying error to be preserved")
	}
}

// TestProber_ConnectionRefused verifies that dialing a closed port is
// classified as a connect error.
func TestProber_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	p := NewProber(WithTimeout(2 * time.Second))
	att := p.Probe(context.Background(), url)

	if att.OK() {
		t.Fatalf("expected failure, got status %d", att.StatusCode)
	}
	if att.Failure != FailureConnect {
		t.Errorf("expected %q, got %q (%v)", FailureConnect, att.Failure, att.Err)
	}
}

// TestProber_TLSFailure verifies that a TLS handshake against an untrusted
// certificate is classified as a TLS error.
func TestProber_TLSFailure(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// default prober does not trust httptest's self-signed certificate
	p := NewProber()
	att := p.Probe(context.Background(), server.URL)

	if att.OK() {
		t.Fatalf("expected failure, got status %d", att.StatusCode)
	}
	if att.Failure != FailureTLS {
		t.Errorf("expected %q, got %q (%v)", FailureTLS, att.Failure, att.Err)
	}
}

// TestProber_MalformedURL verifies that an unparseable URL surfaces as a
// classified failure rather than a panic or escaped error.
func TestProber_MalformedURL(t *testing.T) {
	p := NewProber()
	att := p.Probe(context.Background(), "://not-a-url")

	if att.OK() {
		t.Fatal("expected failure for malformed URL")
	}
	if att.Failure != FailureOther {
		t.Errorf("expected %q, got %q (%v)", FailureOther, att.Failure, att.Err)
	}
}

// TestProber_HeadMethod verifies that WithMethod switches the request method.
func TestProber_HeadMethod(t *testing.T) {
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := NewProber(WithMethod(http.MethodHead))
	att := p.Probe(context.Background(), server.URL)

	if !att.OK() {
		t.Fatalf("expected success, got failure %q (%v)", att.Failure, att.Err)
	}
	if gotMethod != http.MethodHead {
		t.Errorf("expected HEAD request, server saw %q", gotMethod)
	}
}

// TestProber_CancelledContext verifies that a cancelled caller context fails
// the attempt immediately without escaping as an error.
func TestProber_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewProber()
	att := p.Probe(ctx, server.URL)

	if att.OK() {
		t.Fatal("expected failure with cancelled context")
	}
	if att.Err == nil {
		t.Error("expected underlying error to be preserved")
	}
}

// TestProber_Close verifies that Close is safe to call repeatedly and on a
// nil prober, and that the prober stays usable afterwards.
func TestProber_Close(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := NewProber()
	if att := p.Probe(context.Background(), server.URL); !att.OK() {
		t.Fatalf("request failed: %v", att.Err)
	}

	p.Close()
	p.Close()

	var nilProber *Prober
	nilProber.Close()

	if att := p.Probe(context.Background(), server.URL); !att.OK() {
		t.Errorf("request after Close failed: %v", att.Err)
	}
}
