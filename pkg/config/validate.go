package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"

	"mercator-hq/jikan/pkg/limits/ratelimit"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "client.base_url").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All validation errors are collected and
// returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateClient(&cfg.Client)...)
	errs = append(errs, validateRateLimits(&cfg.RateLimits)...)
	errs = append(errs, validateCache(&cfg.Cache)...)
	errs = append(errs, validatePoller(&cfg.Poller)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateClient(cfg *ClientConfig) []FieldError {
	var errs []FieldError

	u, err := url.Parse(cfg.BaseURL)
	switch {
	case cfg.BaseURL == "":
		errs = append(errs, FieldError{Field: "client.base_url", Message: "base URL is required"})
	case err != nil:
		errs = append(errs, FieldError{Field: "client.base_url", Message: fmt.Sprintf("invalid URL: %v", err)})
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, FieldError{Field: "client.base_url", Message: "scheme must be http or https"})
	case u.Host == "":
		errs = append(errs, FieldError{Field: "client.base_url", Message: "host is required"})
	}

	if cfg.Timeout < 0 {
		errs = append(errs, FieldError{Field: "client.timeout", Message: "timeout must not be negative"})
	}

	return errs
}

func validateRateLimits(cfg *RateLimitConfig) []FieldError {
	var errs []FieldError
	for i, w := range cfg.Windows {
		if _, err := ratelimit.ParseRateWindow(w); err != nil {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("rate_limits.windows[%d]", i),
				Message: err.Error(),
			})
		}
	}
	return errs
}

func validateCache(cfg *CacheConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "none", "memory", "sqlite", "redis":
	default:
		errs = append(errs, FieldError{
			Field:   "cache.backend",
			Message: fmt.Sprintf("unknown backend %q (valid: none, memory, sqlite, redis)", cfg.Backend),
		})
	}

	if cfg.TTL < 0 {
		errs = append(errs, FieldError{Field: "cache.ttl", Message: "ttl must not be negative"})
	}
	if cfg.MaxEntries < 0 {
		errs = append(errs, FieldError{Field: "cache.max_entries", Message: "max entries must not be negative"})
	}

	if cfg.Backend == "sqlite" {
		if cfg.SQLite.Path == "" {
			errs = append(errs, FieldError{Field: "cache.sqlite.path", Message: "path is required"})
		}
		if cfg.SQLite.Driver != "sqlite" && cfg.SQLite.Driver != "sqlite3" {
			errs = append(errs, FieldError{
				Field:   "cache.sqlite.driver",
				Message: fmt.Sprintf("unknown driver %q (valid: sqlite, sqlite3)", cfg.SQLite.Driver),
			})
		}
	}

	if cfg.Backend == "redis" {
		if cfg.Redis.Addr == "" {
			errs = append(errs, FieldError{Field: "cache.redis.addr", Message: "address is required"})
		}
		if cfg.Redis.DB < 0 {
			errs = append(errs, FieldError{Field: "cache.redis.db", Message: "db must not be negative"})
		}
	}

	return errs
}

// Endpoints a poll job may target.
var pollEndpoints = map[string]bool{
	"schedules": true,
	"top_anime": true,
	"anime":     true,
	"manga":     true,
}

// ScheduleDays are the values accepted by the schedules filter.
var ScheduleDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday", "other", "unknown"}

func validatePoller(cfg *PollerConfig) []FieldError {
	var errs []FieldError
	seen := make(map[string]bool)

	for i, job := range cfg.Jobs {
		prefix := fmt.Sprintf("poller.jobs[%d]", i)

		if job.Name == "" {
			errs = append(errs, FieldError{Field: prefix + ".name", Message: "name is required"})
		} else if seen[job.Name] {
			errs = append(errs, FieldError{Field: prefix + ".name", Message: fmt.Sprintf("duplicate job name %q", job.Name)})
		}
		seen[job.Name] = true

		if _, err := cron.ParseStandard(job.Schedule); err != nil {
			errs = append(errs, FieldError{Field: prefix + ".schedule", Message: fmt.Sprintf("invalid cron expression: %v", err)})
		}

		if !pollEndpoints[job.Endpoint] {
			errs = append(errs, FieldError{
				Field:   prefix + ".endpoint",
				Message: fmt.Sprintf("unknown endpoint %q (valid: schedules, top_anime, anime, manga)", job.Endpoint),
			})
		}

		if (job.Endpoint == "anime" || job.Endpoint == "manga") && job.ID <= 0 {
			errs = append(errs, FieldError{Field: prefix + ".id", Message: "id must be positive"})
		}

		if job.Day != "" && !contains(ScheduleDays, job.Day) {
			errs = append(errs, FieldError{Field: prefix + ".day", Message: fmt.Sprintf("unknown day %q", job.Day)})
		}

		if job.Page < 1 {
			errs = append(errs, FieldError{Field: prefix + ".page", Message: "page must be at least 1"})
		}
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown level %q (valid: debug, info, warn, error)", cfg.Logging.Level),
		})
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "text", "console":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown format %q (valid: json, text)", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{Field: "telemetry.metrics.path", Message: "path must start with /"})
	}

	switch cfg.Tracing.Sampler {
	case "always", "never", "ratio":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sampler",
			Message: fmt.Sprintf("unknown sampler %q (valid: always, never, ratio)", cfg.Tracing.Sampler),
		})
	}
	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, FieldError{Field: "telemetry.tracing.sample_ratio", Message: "sample ratio must be between 0.0 and 1.0"})
	}
	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		errs = append(errs, FieldError{Field: "telemetry.tracing.endpoint", Message: "endpoint is required when tracing is enabled"})
	}

	return errs
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
