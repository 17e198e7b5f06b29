package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetrics tracks response cache effectiveness.
//
// Metrics:
//   - jikan_cache_hits_total: cache hits by backend
//   - jikan_cache_misses_total: cache misses by backend
//
// Hit rate in PromQL:
//
//	rate(jikan_cache_hits_total[5m]) /
//	(rate(jikan_cache_hits_total[5m]) + rate(jikan_cache_misses_total[5m]))
type CacheMetrics struct {
	hitsTotal   *prometheus.CounterVec
	missesTotal *prometheus.CounterVec
}

// NewCacheMetrics creates and registers cache metrics with the provided registry.
func NewCacheMetrics(namespace string, registry *prometheus.Registry) *CacheMetrics {
	cm := &CacheMetrics{
		hitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "hits_total",
				Help:      "Total number of response cache hits",
			},
			[]string{"backend"},
		),

		missesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "misses_total",
				Help:      "Total number of response cache misses",
			},
			[]string{"backend"},
		),
	}

	registry.MustRegister(cm.hitsTotal, cm.missesTotal)

	return cm
}

// RecordHit records a cache hit.
func (cm *CacheMetrics) RecordHit(backend string) {
	cm.hitsTotal.WithLabelValues(backend).Inc()
}

// RecordMiss records a cache miss.
func (cm *CacheMetrics) RecordMiss(backend string) {
	cm.missesTotal.WithLabelValues(backend).Inc()
}
