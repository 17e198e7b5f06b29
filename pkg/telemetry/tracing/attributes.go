package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys recorded on client spans.
const (
	AttrEndpoint   = "jikan.endpoint"
	AttrRequestID  = "jikan.request_id"
	AttrCacheHit   = "jikan.cache.hit"
	AttrHTTPStatus = "http.response.status_code"
	AttrHTTPMethod = "http.request.method"
	AttrURL        = "url.full"
	AttrWindow     = "jikan.ratelimit.window"
	AttrWaitMS     = "jikan.ratelimit.wait_ms"
)

// RequestAttributes returns the attributes set when an API call starts.
func RequestAttributes(endpoint, method, url, requestID string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrEndpoint, endpoint),
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrURL, url),
		attribute.String(AttrRequestID, requestID),
	}
}

// SetResponse records the HTTP status of a completed call.
func SetResponse(span trace.Span, status int) {
	span.SetAttributes(attribute.Int(AttrHTTPStatus, status))
}

// SetCacheHit records whether the response came from the cache.
func SetCacheHit(span trace.Span, hit bool) {
	span.SetAttributes(attribute.Bool(AttrCacheHit, hit))
}
