package statuschecker

import (
	"strconv"
)

// Failure classifies why a target could not be reached.
//
// Failure is a string type that holds one of five predefined values:
// [FailureDNS], [FailureConnect], [FailureTLS], [FailureTimeout], or
// [FailureOther]. Using a string type allows for easy JSON serialization
// and human-readable logging while maintaining type safety through the
// defined constants.
type Failure string

const (
	// FailureDNS indicates the target's hostname could not be resolved.
	FailureDNS Failure = "dns_error"

	// FailureConnect indicates the TCP connection could not be established.
	FailureConnect Failure = "connect_error"

	// FailureTLS indicates the TLS handshake or certificate verification failed.
	FailureTLS Failure = "tls_error"

	// FailureTimeout indicates the probe deadline expired before a response.
	FailureTimeout Failure = "timeout"

	// FailureOther covers any transport error not matched by the other
	// classifications, including malformed URLs.
	FailureOther Failure = "other_error"
)

// String returns the string representation of the failure.
// This implements the fmt.Stringer interface.
func (f Failure) String() string {
	return string(f)
}

// Status is the final outcome recorded for a target: either an HTTP status
// code or a [Failure] classification, never both.
//
// Status is a tagged variant. Construct values with [HTTPStatus] or
// [Failed] and inspect them with [Status.Code] or [Status.Failure]; the
// two cases only collapse into a single heterogeneous field at the JSON
// serialization boundary.
type Status struct {
	code    int
	failure Failure
}

// HTTPStatus returns a [Status] for a target that received an HTTP response
// with the given status code.
func HTTPStatus(code int) Status {
	return Status{code: code}
}

// Failed returns a [Status] for a target whose every attempt failed,
// carrying the classification of the last attempt.
func Failed(f Failure) Status {
	return Status{failure: f}
}

// OK reports whether the target received an HTTP response.
// Any status code counts as reachable; interpreting the code is the
// caller's concern.
func (s Status) OK() bool {
	return s.failure == ""
}

// Code returns the HTTP status code and true when the target responded,
// or zero and false when it failed.
func (s Status) Code() (int, bool) {
	if !s.OK() {
		return 0, false
	}
	return s.code, true
}

// Failure returns the failure classification and true when every attempt
// failed, or an empty value and false when the target responded.
func (s Status) Failure() (Failure, bool) {
	if s.OK() {
		return "", false
	}
	return s.failure, true
}

// String returns the status code as digits ("200") or the failure
// classification ("timeout"). This implements the fmt.Stringer interface.
func (s Status) String() string {
	if s.OK() {
		return strconv.Itoa(s.code)
	}
	return string(s.failure)
}

// MarshalJSON flattens the variant for the report format: a bare number
// for an HTTP status code, a quoted string for a failure classification.
func (s Status) MarshalJSON() ([]byte, error) {
	if s.OK() {
		return []byte(strconv.Itoa(s.code)), nil
	}
	return strconv.AppendQuote(nil, string(s.failure)), nil
}
