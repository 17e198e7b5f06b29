package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics tracks Jikan API calls.
//
// Metrics:
//   - jikan_client_requests_total: calls by endpoint and status
//   - jikan_client_request_duration_seconds: call latency, including permit waits
//   - jikan_client_response_size_bytes: response body size
type RequestMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	sizeBytes       *prometheus.HistogramVec
}

// NewRequestMetrics creates and registers request metrics with the provided registry.
func NewRequestMetrics(namespace string, registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Total number of Jikan API calls",
			},
			[]string{"endpoint", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "Duration of Jikan API calls in seconds",
				// Permit waits under the default windows reach several seconds.
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16, 32},
			},
			[]string{"endpoint"},
		),

		sizeBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "response_size_bytes",
				Help:      "Size of Jikan API response bodies in bytes",
				Buckets:   prometheus.ExponentialBuckets(512, 2, 12), // 512B to 1MB
			},
			[]string{"endpoint"},
		),
	}

	registry.MustRegister(
		rm.requestsTotal,
		rm.requestDuration,
		rm.sizeBytes,
	)

	return rm
}

// RecordRequest records metrics for a completed call.
func (rm *RequestMetrics) RecordRequest(endpoint, status string, duration time.Duration, size int) {
	rm.requestsTotal.WithLabelValues(endpoint, status).Inc()
	rm.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
	if size > 0 {
		rm.sizeBytes.WithLabelValues(endpoint).Observe(float64(size))
	}
}
