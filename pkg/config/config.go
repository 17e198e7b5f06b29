package config

import "time"

// Config is the root configuration structure for the Jikan client and CLI.
type Config struct {
	// Client contains HTTP settings for talking to the Jikan API.
	Client ClientConfig `yaml:"client"`

	// RateLimits contains the client-side rate windows every request must
	// pass through.
	RateLimits RateLimitConfig `yaml:"rate_limits"`

	// Cache contains response cache settings.
	Cache CacheConfig `yaml:"cache"`

	// Poller contains scheduled fetch jobs for the poll command.
	Poller PollerConfig `yaml:"poller"`

	// Telemetry contains logging, metrics and tracing settings.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ClientConfig contains configuration for the Jikan HTTP client.
type ClientConfig struct {
	// BaseURL is the root of the Jikan REST API.
	// Default: "https://api.jikan.moe/v4"
	BaseURL string `yaml:"base_url"`

	// Timeout bounds a single HTTP request, excluding time spent waiting for
	// a rate limit permit.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`

	// UserAgent is sent with every request.
	// Default: "jikan-go/<version>"
	UserAgent string `yaml:"user_agent"`
}

// RateLimitConfig contains the client-side rate limiting configuration.
//
// Each window is written as "count/duration", for example "3/1s". A request
// must hold a permit from every window before it is sent.
type RateLimitConfig struct {
	// Windows lists the rate windows in nesting order, outermost first.
	// When the key is absent the public Jikan limits are used. An explicit
	// empty list disables throttling.
	// Default: ["1/300ms", "3/1s", "4/4s"]
	Windows []string `yaml:"windows"`

	// Disabled turns off client-side throttling entirely.
	// Default: false
	Disabled bool `yaml:"disabled"`
}

// CacheConfig contains response cache configuration.
type CacheConfig struct {
	// Backend selects the cache implementation.
	// Options: "none", "memory", "sqlite", "redis"
	// Default: "memory"
	Backend string `yaml:"backend"`

	// TTL is how long a cached response stays valid.
	// Default: 5m
	TTL time.Duration `yaml:"ttl"`

	// MaxEntries caps the memory backend. Oldest entries are evicted first.
	// Default: 1000
	MaxEntries int `yaml:"max_entries"`

	// SQLite contains settings for the sqlite backend.
	SQLite SQLiteCacheConfig `yaml:"sqlite"`

	// Redis contains settings for the redis backend.
	Redis RedisCacheConfig `yaml:"redis"`
}

// SQLiteCacheConfig contains SQLite cache settings.
type SQLiteCacheConfig struct {
	// Path is the database file.
	// Default: "jikan-cache.db"
	Path string `yaml:"path"`

	// Driver selects the database/sql driver.
	// Options: "sqlite" (pure Go, modernc.org/sqlite), "sqlite3" (cgo, mattn/go-sqlite3)
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// BusyTimeout is how long to wait for database locks.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RedisCacheConfig contains Redis cache settings.
type RedisCacheConfig struct {
	// Addr is the Redis server address.
	// Default: "localhost:6379"
	Addr string `yaml:"addr"`

	// Password is the optional Redis password. It may be a secret
	// reference such as "env:REDIS_PASSWORD" or "file:/run/secrets/redis".
	Password string `yaml:"password"`

	// DB is the Redis database number.
	// Default: 0
	DB int `yaml:"db"`

	// KeyPrefix is prepended to every cache key.
	// Default: "jikan:"
	KeyPrefix string `yaml:"key_prefix"`
}

// PollerConfig contains scheduled fetch jobs.
type PollerConfig struct {
	// Jobs is the list of jobs run by the poll command.
	Jobs []PollJob `yaml:"jobs"`
}

// PollJob describes one periodic fetch.
type PollJob struct {
	// Name identifies the job in logs and metrics. Must be unique.
	Name string `yaml:"name"`

	// Schedule is a standard 5-field cron expression or a descriptor such
	// as "@every 10m".
	Schedule string `yaml:"schedule"`

	// Endpoint selects what to fetch.
	// Options: "schedules", "top_anime", "anime", "manga"
	Endpoint string `yaml:"endpoint"`

	// ID is the MyAnimeList id for "anime" and "manga" jobs.
	ID int `yaml:"id"`

	// Day filters "schedules" jobs ("monday".."sunday", "other", "unknown").
	Day string `yaml:"day"`

	// Page is the result page for paged endpoints.
	// Default: 1
	Page int `yaml:"page"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "jikan"
	Namespace string `yaml:"namespace"`

	// Address is where the poll command serves metrics.
	// Default: "127.0.0.1:9090"
	Address string `yaml:"address"`

	// Path is the HTTP path for the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS to the collector.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout bounds exporter calls.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// ServiceName is the service name in traces.
	// Default: "jikan"
	ServiceName string `yaml:"service_name"`
}
