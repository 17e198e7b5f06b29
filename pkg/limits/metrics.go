package limits

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/jikan/pkg/limits/ratelimit"
)

// Metrics records rate limiter activity as Prometheus metrics.
//
// Metrics implements ratelimit.Observer, so it can be attached to a chain
// with ratelimit.WithObserver. Every series is labelled with the window it
// belongs to ("3/1s").
type Metrics struct {
	admissions *prometheus.CounterVec
	cancels    *prometheus.CounterVec
	inUse      *prometheus.GaugeVec
	waitTime   *prometheus.HistogramVec
}

// NewMetrics creates limiter metrics and registers them with reg. A nil reg
// uses a fresh registry, which keeps tests and repeated clients isolated.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	if namespace == "" {
		namespace = "jikan"
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		admissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ratelimit",
				Name:      "admissions_total",
				Help:      "Total number of permits granted",
			},
			[]string{"window"},
		),
		cancels: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ratelimit",
				Name:      "cancellations_total",
				Help:      "Total number of callers that gave up before getting a permit",
			},
			[]string{"window", "reason"},
		),
		inUse: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "ratelimit",
				Name:      "permits_in_use",
				Help:      "Permits held by running work or cooling down",
			},
			[]string{"window"},
		),
		waitTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "ratelimit",
				Name:      "wait_duration_seconds",
				Help:      "Time spent waiting for a permit",
				Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.3, 0.5, 1, 2, 4, 8},
			},
			[]string{"window"},
		),
	}

	var err error
	if m.admissions, err = register(reg, m.admissions); err != nil {
		return nil, err
	}
	if m.cancels, err = register(reg, m.cancels); err != nil {
		return nil, err
	}
	if m.inUse, err = register(reg, m.inUse); err != nil {
		return nil, err
	}
	if m.waitTime, err = register(reg, m.waitTime); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg. When an identical collector is already registered
// (a second client sharing one registry) the existing one is returned.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// OnAcquire implements ratelimit.Observer.
func (m *Metrics) OnAcquire(w ratelimit.RateWindow, waited time.Duration) {
	label := w.String()
	m.admissions.WithLabelValues(label).Inc()
	m.inUse.WithLabelValues(label).Inc()
	m.waitTime.WithLabelValues(label).Observe(waited.Seconds())
}

// OnRelease implements ratelimit.Observer.
func (m *Metrics) OnRelease(w ratelimit.RateWindow) {
	m.inUse.WithLabelValues(w.String()).Dec()
}

// OnCancel implements ratelimit.Observer.
func (m *Metrics) OnCancel(w ratelimit.RateWindow, err error) {
	reason := "canceled"
	if errors.Is(err, context.DeadlineExceeded) {
		reason = "deadline"
	}
	m.cancels.WithLabelValues(w.String(), reason).Inc()
}
