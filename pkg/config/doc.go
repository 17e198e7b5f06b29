// Package config provides configuration management for the Jikan client.
//
// This package handles loading, validating, and watching configuration from
// YAML files with environment variable overrides.
//
// # Configuration Loading
//
//	cfg, err := config.Load("jikan.yaml") // file + env overrides
//	cfg, err := config.Load("")           // defaults + env overrides
//
// # Example File
//
//	client:
//	  base_url: https://api.jikan.moe/v4
//	  timeout: 30s
//	rate_limits:
//	  windows: ["1/300ms", "3/1s", "4/4s"]
//	cache:
//	  backend: sqlite
//	  ttl: 10m
//	poller:
//	  jobs:
//	    - name: weekly-schedule
//	      schedule: "@every 30m"
//	      endpoint: schedules
//	      day: monday
//
// An explicit empty windows list (or rate_limits.disabled: true) turns off
// client-side throttling.
//
// # Environment Variable Overrides
//
//   - JIKAN_CLIENT_BASE_URL, JIKAN_CLIENT_TIMEOUT, JIKAN_CLIENT_USER_AGENT
//   - JIKAN_RATE_LIMITS (comma list, "" for none), JIKAN_RATE_LIMITS_DISABLED
//   - JIKAN_CACHE_BACKEND, JIKAN_CACHE_TTL, JIKAN_CACHE_SQLITE_PATH,
//     JIKAN_CACHE_SQLITE_DRIVER, JIKAN_CACHE_REDIS_ADDR,
//     JIKAN_CACHE_REDIS_PASSWORD, JIKAN_CACHE_REDIS_DB
//   - JIKAN_LOG_LEVEL, JIKAN_LOG_FORMAT
//   - JIKAN_METRICS_ENABLED, JIKAN_METRICS_ADDRESS
//   - JIKAN_TRACING_ENABLED, JIKAN_TRACING_ENDPOINT, JIKAN_TRACING_SAMPLE_RATIO
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Hot Reload
//
// Watcher reloads the file on change; the poll command uses it to pick up
// new jobs and log levels without a restart.
package config
