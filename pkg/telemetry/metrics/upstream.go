package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics tracks the health of the Jikan API as seen by the client.
//
// Metrics:
//   - jikan_client_errors_total: failed calls by endpoint and error type
//   - jikan_client_api_healthy: 1 while healthy, 0 after repeated failures
type UpstreamMetrics struct {
	errorsTotal *prometheus.CounterVec
	healthy     prometheus.Gauge
}

// NewUpstreamMetrics creates and registers upstream metrics with the provided registry.
func NewUpstreamMetrics(namespace string, registry *prometheus.Registry) *UpstreamMetrics {
	um := &UpstreamMetrics{
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "errors_total",
				Help:      "Total number of failed Jikan API calls",
			},
			[]string{"endpoint", "type"},
		),

		healthy: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "api_healthy",
				Help:      "Whether the Jikan API is considered healthy (1) or not (0)",
			},
		),
	}

	registry.MustRegister(um.errorsTotal, um.healthy)
	um.healthy.Set(1)

	return um
}

// RecordError records a failed call.
func (um *UpstreamMetrics) RecordError(endpoint, errorType string) {
	um.errorsTotal.WithLabelValues(endpoint, errorType).Inc()
}

// UpdateHealth sets the health gauge.
func (um *UpstreamMetrics) UpdateHealth(healthy bool) {
	if healthy {
		um.healthy.Set(1)
	} else {
		um.healthy.Set(0)
	}
}
