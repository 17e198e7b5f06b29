package server

import (
	"net/http"
	"runtime/debug"
	"time"

	"mercator-hq/jikan/pkg/telemetry/logging"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// statusWriter captures the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// AccessLog logs each request at debug level with a request id taken from
// X-Request-ID or generated.
func AccessLog(logger *logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if id := r.Header.Get("X-Request-ID"); id != "" {
				ctx = logging.WithRequestID(ctx, id)
			}
			ctx, requestID := logging.EnsureRequestID(ctx)
			w.Header().Set("X-Request-ID", requestID)

			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r.WithContext(ctx))

			logger.DebugContext(ctx, "admin request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start),
			)
		})
	}
}

// Recovery turns a handler panic into a 500 and logs the stack.
func Recovery(logger *logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.ErrorContext(r.Context(), "panic in admin handler",
						"error", err,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					http.Error(w, "internal error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
