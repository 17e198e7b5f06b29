// Package metrics provides Prometheus metrics for the Jikan client.
//
// # Overview
//
// A Collector owns one prometheus.Registry. The client records API calls,
// errors, health and cache hits through it; the poller records job runs; the
// rate limiter registers its own series (see pkg/limits) on the same
// registry.
//
// # Exposition
//
// The poll command serves the registry over HTTP:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	mux := http.NewServeMux()
//	mux.Handle("/metrics", collector.Handler())
//
// # Metric Names
//
//   - jikan_client_requests_total{endpoint,status}
//   - jikan_client_request_duration_seconds{endpoint}
//   - jikan_client_response_size_bytes{endpoint}
//   - jikan_client_errors_total{endpoint,type}
//   - jikan_client_api_healthy
//   - jikan_cache_hits_total{backend}, jikan_cache_misses_total{backend}
//   - jikan_poller_runs_total{job,result}
//   - jikan_poller_run_duration_seconds{job}
//   - jikan_poller_last_success_timestamp_seconds{job}
package metrics
