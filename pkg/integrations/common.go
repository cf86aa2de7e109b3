package integrations

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds a single upstream call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the upstream answers 404.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for transport failures (connection errors, timeouts).
	ErrNetwork = errors.New("network error")

	// ErrStatus is returned for any status other than 200 and 404.
	ErrStatus = errors.New("unexpected status")

	// ErrDecode is returned when a 200 response body is not valid JSON for the target.
	ErrDecode = errors.New("malformed response")
)

// Kind classifies an upstream client failure. Each client package exposes
// its own error type carrying a Kind so the API boundary can map the two
// upstream error spaces separately.
type Kind int

const (
	// KindInternal covers transport failures, timeouts, unexpected statuses
	// and malformed or incomplete payloads.
	KindInternal Kind = iota
	// KindNotFound means the upstream reported the resource does not exist.
	KindNotFound
	// KindBadRequest is reserved for caller input validation.
	KindBadRequest
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindBadRequest:
		return "bad request"
	default:
		return "internal error"
	}
}

// Classify maps an error returned by [Client] to a Kind.
// Only [ErrNotFound] is distinguished; every other failure is internal.
func Classify(err error) Kind {
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}
	return KindInternal
}

// SharedTransport is the connection pool shared by every upstream client.
// It is created once and read-shared; http.Transport is safe for concurrent use.
var SharedTransport http.RoundTripper = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ForceAttemptHTTP2:     true,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   20,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   5 * time.Second,
	ExpectContinueTimeout: time.Second,
}

// NewHTTPClient creates an HTTP client over [SharedTransport] whose calls are
// bounded by timeout. A non-positive timeout selects [DefaultTimeout].
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Transport: SharedTransport, Timeout: timeout}
}

// PathEscape percent-encodes a string for use as a single URL path segment.
func PathEscape(s string) string { return url.PathEscape(s) }

// URLEncode percent-encodes a string for use in URL query strings.
// This is a convenience wrapper around [url.QueryEscape].
func URLEncode(s string) string { return url.QueryEscape(s) }
