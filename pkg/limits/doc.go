// Package limits holds the client-side rate limiting for the Jikan API.
//
// # Overview
//
// The limiting algorithm itself lives in the ratelimit sub-package. This
// package adds Prometheus instrumentation on top of it:
//
//	m, err := limits.NewMetrics("jikan", registry)
//	if err != nil {
//	    return err
//	}
//	chain, err := ratelimit.NewChain(ratelimit.DefaultWindows(), ratelimit.WithObserver(m))
//
// # Metrics
//
//   - jikan_ratelimit_admissions_total{window}
//   - jikan_ratelimit_cancellations_total{window,reason}
//   - jikan_ratelimit_permits_in_use{window}
//   - jikan_ratelimit_wait_duration_seconds{window}
//
// # Thread Safety
//
// Metrics is safe for concurrent use; it is called from limiter goroutines
// and cooldown timers.
package limits
