package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load returns the effective configuration: the YAML file at path (or only
// defaults when path is empty), followed by JIKAN_* environment overrides
// and validation.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := NewDefaultConfig()
		applyEnvOverrides(cfg)
		if err := Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
		return cfg, nil
	}
	return LoadConfigWithEnvOverrides(path)
}

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// Environment variables are not consulted; use LoadConfigWithEnvOverrides
// for that.
func LoadConfig(path string) (*Config, error) {
	cfg, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables always take
// precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// parseFile reads and decodes path and applies defaults.
func parseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Malformed numeric, boolean and duration values are ignored.
func applyEnvOverrides(cfg *Config) {
	// Client overrides
	if val := os.Getenv("JIKAN_CLIENT_BASE_URL"); val != "" {
		cfg.Client.BaseURL = val
	}
	if val := os.Getenv("JIKAN_CLIENT_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Client.Timeout = d
		}
	}
	if val := os.Getenv("JIKAN_CLIENT_USER_AGENT"); val != "" {
		cfg.Client.UserAgent = val
	}

	// Rate limit overrides. A set-but-empty JIKAN_RATE_LIMITS clears the
	// window list.
	if val, ok := os.LookupEnv("JIKAN_RATE_LIMITS"); ok {
		cfg.RateLimits.Windows = splitList(val)
	}
	if val := os.Getenv("JIKAN_RATE_LIMITS_DISABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.RateLimits.Disabled = b
		}
	}

	// Cache overrides
	if val := os.Getenv("JIKAN_CACHE_BACKEND"); val != "" {
		cfg.Cache.Backend = val
	}
	if val := os.Getenv("JIKAN_CACHE_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Cache.TTL = d
		}
	}
	if val := os.Getenv("JIKAN_CACHE_SQLITE_PATH"); val != "" {
		cfg.Cache.SQLite.Path = val
	}
	if val := os.Getenv("JIKAN_CACHE_SQLITE_DRIVER"); val != "" {
		cfg.Cache.SQLite.Driver = val
	}
	if val := os.Getenv("JIKAN_CACHE_REDIS_ADDR"); val != "" {
		cfg.Cache.Redis.Addr = val
	}
	if val := os.Getenv("JIKAN_CACHE_REDIS_PASSWORD"); val != "" {
		cfg.Cache.Redis.Password = val
	}
	if val := os.Getenv("JIKAN_CACHE_REDIS_DB"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Cache.Redis.DB = i
		}
	}

	// Telemetry overrides
	if val := os.Getenv("JIKAN_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("JIKAN_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("JIKAN_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("JIKAN_METRICS_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.Address = val
	}
	if val := os.Getenv("JIKAN_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("JIKAN_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
	if val := os.Getenv("JIKAN_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
}

// splitList splits a comma separated list, dropping blank items. It never
// returns nil so that an empty value stays distinguishable from "unset".
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
