package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"os"
	"syscall"
)

// Classification names the transport-level reason a probe failed.
//
// Classification is a string type so it can flow straight into logs and the
// serialized report. The empty string means "no failure".
type Classification string

const (
	// FailureDNS indicates the hostname could not be resolved.
	FailureDNS Classification = "dns_error"

	// FailureConnect indicates the TCP connection could not be established.
	FailureConnect Classification = "connect_error"

	// FailureTLS indicates the TLS handshake or certificate verification failed.
	FailureTLS Classification = "tls_error"

	// FailureTimeout indicates the attempt deadline expired.
	FailureTimeout Classification = "timeout"

	// FailureOther covers every transport error not matched above,
	// including malformed URLs rejected at request construction.
	FailureOther Classification = "other_error"
)

// String returns the classification as a plain string.
func (c Classification) String() string {
	return string(c)
}

// Classify maps a transport error to its [Classification].
//
// The error chain is inspected with errors.Is/errors.As, so wrapping by
// *url.Error or fmt.Errorf does not hide the cause. DNS failures are
// classified as dns_error even when the resolver timed out; only the
// attempt deadline itself yields timeout.
func Classify(err error) Classification {
	if err == nil {
		return ""
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return FailureDNS
	}

	if isTLSError(err) {
		return FailureTLS
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return FailureConnect
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return FailureConnect
	}

	return FailureOther
}

// isTLSError reports whether the error chain contains a TLS handshake or
// certificate verification failure.
func isTLSError(err error) bool {
	var certVerify *tls.CertificateVerificationError
	if errors.As(err, &certVerify) {
		return true
	}
	var recordHeader tls.RecordHeaderError
	if errors.As(err, &recordHeader) {
		return true
	}
	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return true
	}
	var hostname x509.HostnameError
	if errors.As(err, &hostname) {
		return true
	}
	var invalid x509.CertificateInvalidError
	return errors.As(err, &invalid)
}
