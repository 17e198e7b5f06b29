package logging

import (
	"context"

	"github.com/google/uuid"
)

// Context keys for common log fields.
type contextKey string

const (
	// RequestIDKey is the context key for request IDs.
	RequestIDKey contextKey = "request_id"

	// EndpointKey is the context key for the API endpoint being called.
	EndpointKey contextKey = "endpoint"

	// TraceIDKey is the context key for trace IDs.
	TraceIDKey contextKey = "trace_id"
)

// NewRequestID returns a fresh random request ID.
func NewRequestID() string {
	return uuid.NewString()
}

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// EnsureRequestID returns ctx unchanged if it already carries a request ID,
// otherwise a child context with a new one.
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id := GetRequestID(ctx); id != "" {
		return ctx, id
	}
	id := NewRequestID()
	return WithRequestID(ctx, id), id
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithEndpoint adds an endpoint name to the context.
func WithEndpoint(ctx context.Context, endpoint string) context.Context {
	return context.WithValue(ctx, EndpointKey, endpoint)
}

// GetEndpoint retrieves the endpoint name from the context.
func GetEndpoint(ctx context.Context) string {
	if endpoint, ok := ctx.Value(EndpointKey).(string); ok {
		return endpoint
	}
	return ""
}

// WithTraceID adds a trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}

	var fields []any
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}
	if endpoint := GetEndpoint(ctx); endpoint != "" {
		fields = append(fields, "endpoint", endpoint)
	}
	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, "trace_id", traceID)
	}
	return fields
}
