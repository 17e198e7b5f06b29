// Package tracing provides OpenTelemetry tracing for Jikan API calls.
//
// # Overview
//
// Every client call produces one span covering parameter validation, the
// wait for rate limit permits, and the HTTP round trip. Spans carry the
// endpoint, request ID, HTTP status and whether the response came from
// the cache.
//
// Spans are exported over OTLP gRPC. When tracing is disabled, Noop is
// used and span creation costs next to nothing.
//
// # Sampling Strategies
//
//   - always: Sample all traces
//   - never: Sample no traces
//   - ratio: Sample a fraction of traces by trace ID
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	client, err := jikan.New(jikan.WithTracer(tracer))
package tracing
