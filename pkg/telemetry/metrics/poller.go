package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PollerMetrics tracks scheduled poll jobs.
//
// Metrics:
//   - jikan_poller_runs_total: job executions by job and result
//   - jikan_poller_run_duration_seconds: job execution time
//   - jikan_poller_last_success_timestamp_seconds: unix time of the last successful run
type PollerMetrics struct {
	runsTotal   *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
	lastSuccess *prometheus.GaugeVec
}

// NewPollerMetrics creates and registers poller metrics with the provided registry.
func NewPollerMetrics(namespace string, registry *prometheus.Registry) *PollerMetrics {
	pm := &PollerMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "poller",
				Name:      "runs_total",
				Help:      "Total number of poll job executions",
			},
			[]string{"job", "result"},
		),

		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "poller",
				Name:      "run_duration_seconds",
				Help:      "Duration of poll job executions in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"job"},
		),

		lastSuccess: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "poller",
				Name:      "last_success_timestamp_seconds",
				Help:      "Unix time of the last successful run",
			},
			[]string{"job"},
		),
	}

	registry.MustRegister(pm.runsTotal, pm.runDuration, pm.lastSuccess)

	return pm
}

// RecordRun records one job execution.
func (pm *PollerMetrics) RecordRun(job string, err error, duration time.Duration) {
	result := "success"
	if err != nil {
		result = "error"
	} else {
		pm.lastSuccess.WithLabelValues(job).SetToCurrentTime()
	}
	pm.runsTotal.WithLabelValues(job, result).Inc()
	pm.runDuration.WithLabelValues(job).Observe(duration.Seconds())
}
