package jikan

import (
	"errors"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"mercator-hq/jikan/pkg/cache"
	"mercator-hq/jikan/pkg/limits/ratelimit"
	"mercator-hq/jikan/pkg/telemetry/logging"
	"mercator-hq/jikan/pkg/telemetry/metrics"
	"mercator-hq/jikan/pkg/telemetry/tracing"
)

// Option configures a Client.
type Option func(*Client) error

// WithBaseURL sets the API root. Default: https://api.jikan.moe/v4
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		if baseURL == "" {
			return errors.New("base URL cannot be empty")
		}
		c.baseURL = baseURL
		return nil
	}
}

// WithHTTPClient replaces the HTTP client. WithTimeout has no effect on a
// supplied client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client cannot be nil")
		}
		c.httpClient = hc
		return nil
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
// Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d < 0 {
			return errors.New("timeout cannot be negative")
		}
		c.timeout = d
		return nil
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if ua != "" {
			c.userAgent = ua
		}
		return nil
	}
}

// WithLimiter replaces the rate limiter. Windows() reports nothing for a
// custom limiter.
func WithLimiter(l ratelimit.Limiter) Option {
	return func(c *Client) error {
		if l == nil {
			return errors.New("limiter cannot be nil")
		}
		c.limiter = l
		c.windows = nil
		return nil
	}
}

// WithWindows sets the rate windows, outermost first. No windows means no
// throttling.
func WithWindows(windows ...ratelimit.RateWindow) Option {
	return func(c *Client) error {
		for _, w := range windows {
			if err := w.Validate(); err != nil {
				return err
			}
		}
		c.windows = append([]ratelimit.RateWindow(nil), windows...)
		return nil
	}
}

// WithCache sets the response cache.
func WithCache(backend cache.Backend) Option {
	return func(c *Client) error {
		if backend == nil {
			backend = cache.NewNop()
		}
		c.cache = backend
		return nil
	}
}

// WithCacheTTL sets how long responses stay cached. Default: 5m
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) error {
		if ttl < 0 {
			return errors.New("cache TTL cannot be negative")
		}
		c.cacheTTL = ttl
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Client) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithMetrics records request, cache and limiter metrics on collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(c *Client) error {
		c.metrics = collector
		return nil
	}
}

// WithTracer records a span per API call.
func WithTracer(tracer *tracing.Tracer) Option {
	return func(c *Client) error {
		if tracer != nil {
			c.tracer = tracer
		}
		return nil
	}
}

// WithClock sets the clock used by the default limiter and health tracking.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) error {
		if clock != nil {
			c.clock = clock
		}
		return nil
	}
}
