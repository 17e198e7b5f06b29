// Package telemetry groups the observability packages used by the jikan
// client and command.
//
// # Components
//
//   - logging: structured slog logging with request-scoped fields
//   - metrics: Prometheus collectors for requests, upstream errors, cache and poller
//   - tracing: OpenTelemetry spans exported over OTLP
//   - health: liveness, readiness and version endpoints
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//
//	client, err := jikan.NewFromConfig(ctx, cfg,
//		jikan.WithLogger(logger),
//		jikan.WithMetrics(collector),
//		jikan.WithTracer(tracer),
//	)
//
// Every component has a disabled form (logging.Discard, a collector with
// metrics off, tracing.Noop) so libraries can accept them unconditionally.
package telemetry
