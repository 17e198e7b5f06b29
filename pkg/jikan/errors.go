package jikan

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mercator-hq/jikan/pkg/jikan/guard"
)

// APIError is a non-2xx response other than 404 and 429.
// The fields mirror the JSON error body Jikan returns.
type APIError struct {
	// Endpoint is the logical endpoint name ("anime", "search_anime", ...)
	Endpoint string

	// StatusCode is the HTTP status code
	StatusCode int

	// Type is Jikan's exception class, e.g. "BadResponseException"
	Type string

	// Message is the human readable message from Jikan
	Message string

	// Detail is Jikan's "error" field, when present
	Detail string

	// ReportURL is set by Jikan for unexpected upstream failures
	ReportURL string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return fmt.Sprintf("jikan %s error (status %d): %s", e.Endpoint, e.StatusCode, msg)
}

// Temporary reports whether the failure is on the server side.
func (e *APIError) Temporary() bool {
	return e.StatusCode >= 500
}

// NotFoundError is a 404 from Jikan: the resource does not exist.
type NotFoundError struct {
	// Endpoint is the logical endpoint name
	Endpoint string

	// URL is the requested URL
	URL string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("jikan %s: resource not found (%s)", e.Endpoint, e.URL)
}

// RateLimitError is a 429 from Jikan. Receiving one means the local windows
// are looser than the server's quota.
type RateLimitError struct {
	// Endpoint is the logical endpoint name
	Endpoint string

	// RetryAfter is the server's Retry-After hint (0 if absent)
	RetryAfter time.Duration

	// Message is the error message from Jikan
	Message string
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("jikan %s rate limit exceeded (retry after %s): %s",
			e.Endpoint, e.RetryAfter, e.Message)
	}
	return fmt.Sprintf("jikan %s rate limit exceeded: %s", e.Endpoint, e.Message)
}

// ParseError is a 2xx response whose body could not be decoded.
type ParseError struct {
	// Endpoint is the logical endpoint name
	Endpoint string

	// RawResponse is the body that failed to decode, truncated
	RawResponse string

	// Cause is the underlying decode error
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("jikan %s response parse error: %v", e.Endpoint, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// RequestError is a failure to get any response at all (DNS, connection
// refused, timeout, cancellation).
type RequestError struct {
	// Endpoint is the logical endpoint name
	Endpoint string

	// URL is the requested URL
	URL string

	// Cause is the transport error
	Cause error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("jikan %s request failed: %v", e.Endpoint, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether err is a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsRateLimited reports whether err is a *RateLimitError.
func IsRateLimited(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// errorType classifies err for the client_errors_total metric.
func errorType(err error) string {
	var (
		ve  *guard.ValidationError
		nf  *NotFoundError
		rl  *RateLimitError
		pe  *ParseError
		ae  *APIError
		req *RequestError
	)
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &ve):
		return "validation"
	case errors.As(err, &nf):
		return "not_found"
	case errors.As(err, &rl):
		return "rate_limited"
	case errors.As(err, &pe):
		return "parse"
	case errors.As(err, &ae):
		if ae.Temporary() {
			return "server"
		}
		return "client"
	case errors.As(err, &req):
		return "transport"
	default:
		return "unknown"
	}
}

// parseRetryAfter parses the Retry-After header value.
// It supports both delay-seconds and HTTP-date formats.
func parseRetryAfter(header string, now time.Time) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(header); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(header); err == nil {
		if d := t.Sub(now); d > 0 {
			return d
		}
	}

	return 0
}
