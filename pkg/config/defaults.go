package config

import "time"

// Default values for configuration fields.
const (
	// Client defaults
	DefaultBaseURL       = "https://api.jikan.moe/v4"
	DefaultClientTimeout = 30 * time.Second
	DefaultUserAgent     = "jikan-go"

	// Cache defaults
	DefaultCacheBackend      = "memory"
	DefaultCacheTTL          = 5 * time.Minute
	DefaultCacheMaxEntries   = 1000
	DefaultCacheSQLitePath   = "jikan-cache.db"
	DefaultCacheSQLiteDriver = "sqlite"
	DefaultCacheBusyTimeout  = 5 * time.Second
	DefaultCacheRedisAddr    = "localhost:6379"
	DefaultCacheRedisPrefix  = "jikan:"

	// Poller defaults
	DefaultPollJobPage = 1

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "text"
	DefaultMetricsNamespace   = "jikan"
	DefaultMetricsAddress     = "127.0.0.1:9090"
	DefaultMetricsPath        = "/metrics"
	DefaultTracingSampler     = "ratio"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingTimeout     = 10 * time.Second
	DefaultTracingService     = "jikan"
)

// DefaultRateWindows are the public Jikan API limits in config syntax.
var DefaultRateWindows = []string{"1/300ms", "3/1s", "4/4s"}

// NewDefaultConfig returns a Config with every default applied.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Client defaults
	if cfg.Client.BaseURL == "" {
		cfg.Client.BaseURL = DefaultBaseURL
	}
	if cfg.Client.Timeout == 0 {
		cfg.Client.Timeout = DefaultClientTimeout
	}
	if cfg.Client.UserAgent == "" {
		cfg.Client.UserAgent = DefaultUserAgent
	}

	// Rate limit defaults: nil means "not configured", an empty slice is an
	// explicit request for no throttling.
	if cfg.RateLimits.Windows == nil {
		cfg.RateLimits.Windows = append([]string(nil), DefaultRateWindows...)
	}

	// Cache defaults
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = DefaultCacheBackend
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = DefaultCacheTTL
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = DefaultCacheMaxEntries
	}
	if cfg.Cache.SQLite.Path == "" {
		cfg.Cache.SQLite.Path = DefaultCacheSQLitePath
	}
	if cfg.Cache.SQLite.Driver == "" {
		cfg.Cache.SQLite.Driver = DefaultCacheSQLiteDriver
	}
	if cfg.Cache.SQLite.BusyTimeout == 0 {
		cfg.Cache.SQLite.BusyTimeout = DefaultCacheBusyTimeout
	}
	if cfg.Cache.Redis.Addr == "" {
		cfg.Cache.Redis.Addr = DefaultCacheRedisAddr
	}
	if cfg.Cache.Redis.KeyPrefix == "" {
		cfg.Cache.Redis.KeyPrefix = DefaultCacheRedisPrefix
	}

	// Poller defaults - applied to each job
	for i := range cfg.Poller.Jobs {
		if cfg.Poller.Jobs[i].Page == 0 {
			cfg.Poller.Jobs[i].Page = DefaultPollJobPage
		}
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Address == "" {
		cfg.Telemetry.Metrics.Address = DefaultMetricsAddress
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.Timeout == 0 {
		cfg.Telemetry.Tracing.Timeout = DefaultTracingTimeout
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingService
	}
}
