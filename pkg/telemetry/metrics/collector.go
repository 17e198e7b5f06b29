package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/jikan/pkg/config"
)

// Collector owns the Prometheus registry for a client process and records
// API call, cache and poller metrics.
//
// A nil *Collector, or one built from a disabled config, records nothing,
// so callers never need to guard their calls.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	requestMetrics *RequestMetrics
	upstream       *UpstreamMetrics
	cacheMetrics   *CacheMetrics
	pollerMetrics  *PollerMetrics
}

// NewCollector creates a metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	http.Handle("/metrics", collector.Handler())
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg == nil {
		cfg = &config.MetricsConfig{Enabled: true}
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}

	return &Collector{
		config:         cfg,
		registry:       registry,
		requestMetrics: NewRequestMetrics(cfg.Namespace, registry),
		upstream:       NewUpstreamMetrics(cfg.Namespace, registry),
		cacheMetrics:   NewCacheMetrics(cfg.Namespace, registry),
		pollerMetrics:  NewPollerMetrics(cfg.Namespace, registry),
	}
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordRequest records a completed API call.
//
// Parameters:
//   - endpoint: logical endpoint name ("anime", "search_anime", ...)
//   - status: "success", "error" or "cached"
//   - duration: time from call to result, including permit waits
//   - size: response body size in bytes, 0 if unknown
func (c *Collector) RecordRequest(endpoint, status string, duration time.Duration, size int) {
	if !c.enabled() {
		return
	}
	c.requestMetrics.RecordRequest(endpoint, status, duration, size)
}

// RecordError records a failed API call by error type
// ("rate_limited", "not_found", "api", "parse", "transport", "validation").
func (c *Collector) RecordError(endpoint, errorType string) {
	if !c.enabled() {
		return
	}
	c.upstream.RecordError(endpoint, errorType)
}

// UpdateHealth records whether the API is considered healthy.
func (c *Collector) UpdateHealth(healthy bool) {
	if !c.enabled() {
		return
	}
	c.upstream.UpdateHealth(healthy)
}

// RecordCacheHit records a cache hit for a backend.
func (c *Collector) RecordCacheHit(backend string) {
	if !c.enabled() {
		return
	}
	c.cacheMetrics.RecordHit(backend)
}

// RecordCacheMiss records a cache miss for a backend.
func (c *Collector) RecordCacheMiss(backend string) {
	if !c.enabled() {
		return
	}
	c.cacheMetrics.RecordMiss(backend)
}

// RecordPollRun records one execution of a poll job.
func (c *Collector) RecordPollRun(job string, err error, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.pollerMetrics.RecordRun(job, err, duration)
}

// Registry returns the Prometheus registry used by this collector. Other
// packages register their own collectors with it, for example
// limits.NewMetrics(namespace, collector.Registry()).
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Namespace returns the metric name prefix.
func (c *Collector) Namespace() string {
	return c.config.Namespace
}

// Enabled reports whether metrics are being recorded.
func (c *Collector) Enabled() bool {
	return c.enabled()
}
