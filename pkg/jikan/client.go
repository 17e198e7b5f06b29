package jikan

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"mercator-hq/jikan/pkg/cache"
	"mercator-hq/jikan/pkg/config"
	"mercator-hq/jikan/pkg/limits"
	"mercator-hq/jikan/pkg/limits/ratelimit"
	"mercator-hq/jikan/pkg/telemetry/logging"
	"mercator-hq/jikan/pkg/telemetry/metrics"
	"mercator-hq/jikan/pkg/telemetry/tracing"
)

// Defaults used when no option overrides them.
const (
	DefaultBaseURL   = config.DefaultBaseURL
	DefaultTimeout   = config.DefaultClientTimeout
	DefaultUserAgent = config.DefaultUserAgent
	DefaultCacheTTL  = config.DefaultCacheTTL
)

// Client calls the Jikan v4 REST API.
//
// Every request that reaches the network is admitted by the client's
// Limiter first; cache hits are answered without touching the limiter.
// A Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string

	limiter ratelimit.Limiter
	windows []ratelimit.RateWindow

	cache     cache.Backend
	cacheTTL  time.Duration
	ownsCache bool

	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	clock   clockwork.Clock

	health   Health
	healthMu sync.RWMutex

	closeOnce sync.Once
}

// New creates a client. Without options it talks to the public API through
// the default Jikan windows (1/300ms, 3/1s, 4/4s) and caches nothing.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		windows:   ratelimit.DefaultWindows(),
		cache:     cache.NewNop(),
		cacheTTL:  DefaultCacheTTL,
		logger:    logging.Discard(),
		tracer:    tracing.Noop(),
		clock:     clockwork.NewRealClock(),
		health:    Health{Healthy: true},
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if _, err := url.ParseRequestURI(c.baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", c.baseURL, err)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
			Timeout: c.timeout,
		}
	}

	c.logger = c.logger.Component("jikan")

	if c.limiter == nil {
		chain, err := ratelimit.NewChain(c.windows,
			ratelimit.WithClock(c.clock),
			ratelimit.WithObserver(c.limiterObserver()),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to build rate limiter: %w", err)
		}
		c.limiter = chain
	}

	c.logger.Debug("client created",
		"base_url", c.baseURL,
		"windows", windowStrings(c.windows),
		"cache", c.cache.Name(),
	)
	return c, nil
}

// NewFromConfig builds a client from loaded configuration. The cache backend
// named in cfg.Cache is opened and owned by the client; Close releases it.
func NewFromConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	windows, err := cfg.RateLimits.RateWindows()
	if err != nil {
		return nil, err
	}

	backend, err := cache.New(ctx, &cfg.Cache, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	base := []Option{
		WithBaseURL(cfg.Client.BaseURL),
		WithTimeout(cfg.Client.Timeout),
		WithUserAgent(cfg.Client.UserAgent),
		WithWindows(windows...),
		WithCache(backend),
		WithCacheTTL(cfg.Cache.TTL),
		func(c *Client) error { c.ownsCache = true; return nil },
	}

	c, err := New(append(base, opts...)...)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return c, nil
}

// limiterObserver wires permit events to logs and, when metrics are enabled,
// to the limiter's Prometheus series on the collector's registry.
func (c *Client) limiterObserver() ratelimit.Observer {
	observers := []ratelimit.Observer{limits.NewLogObserver(c.logger)}

	if c.metrics.Enabled() {
		m, err := limits.NewMetrics(c.metrics.Namespace(), c.metrics.Registry())
		if err != nil {
			c.logger.Warn("failed to register rate limiter metrics", "error", err)
		} else {
			observers = append(observers, m)
		}
	}

	return ratelimit.Observers(observers...)
}

// Limiter returns the limiter every network request passes through.
func (c *Client) Limiter() ratelimit.Limiter {
	return c.limiter
}

// Windows returns the configured rate windows. It is empty when a custom
// limiter was supplied or throttling is disabled.
func (c *Client) Windows() []ratelimit.RateWindow {
	out := make([]ratelimit.RateWindow, len(c.windows))
	copy(out, c.windows)
	return out
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Cache returns the response cache backend.
func (c *Client) Cache() cache.Backend {
	return c.cache
}

// Drain waits until every scheduled permit release has fired, or ctx ends.
// Limiters that do not track cooldowns return immediately.
func (c *Client) Drain(ctx context.Context) error {
	if d, ok := c.limiter.(interface{ Drain(context.Context) error }); ok {
		return d.Drain(ctx)
	}
	return nil
}

// Close releases idle connections and, for clients built by NewFromConfig,
// the cache backend. Close is idempotent.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.httpClient.CloseIdleConnections()
		if c.ownsCache {
			err = c.cache.Close()
		}
	})
	return err
}

func (c *Client) now() time.Time {
	return c.clock.Now()
}

func windowStrings(windows []ratelimit.RateWindow) []string {
	out := make([]string, len(windows))
	for i, w := range windows {
		out[i] = w.String()
	}
	return out
}
