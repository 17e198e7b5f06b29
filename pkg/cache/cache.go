package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mercator-hq/jikan/pkg/config"
	"mercator-hq/jikan/pkg/secrets"
)

// Backend names accepted by New.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// ErrClosed is returned by operations on a backend after Close.
var ErrClosed = errors.New("cache: backend closed")

// Backend stores raw response bodies keyed by request.
//
// Implementations must be safe for concurrent use. A ttl of zero means the
// entry never expires.
type Backend interface {
	// Get returns the value for key. The boolean is false on a miss or when
	// the entry has expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Purge removes expired entries and reports how many were removed.
	Purge(ctx context.Context) (int, error)

	// Clear removes every entry and reports how many were removed.
	Clear(ctx context.Context) (int, error)

	// Name returns the backend name ("memory", "sqlite", "redis", "none").
	Name() string

	// Close releases resources. Close is idempotent.
	Close() error
}

// Key builds the cache key for a request.
func Key(method, url string) string {
	return strings.ToUpper(method) + " " + url
}

// Error describes a failed backend operation.
type Error struct {
	Backend string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cache %s %s: %v", e.Backend, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(backend, op string, err error) error {
	return &Error{Backend: backend, Op: op, Err: err}
}

// New creates the backend selected by cfg. A nil logger falls back to
// slog.Default().
func New(ctx context.Context, cfg *config.CacheConfig, logger *slog.Logger) (Backend, error) {
	if cfg == nil {
		return NewNop(), nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Backend {
	case BackendNone:
		return NewNop(), nil
	case BackendMemory, "":
		return NewMemory(cfg.MaxEntries), nil
	case BackendSQLite:
		return NewSQLite(&SQLiteConfig{
			Path:        cfg.SQLite.Path,
			Driver:      cfg.SQLite.Driver,
			BusyTimeout: cfg.SQLite.BusyTimeout,
			Logger:      logger,
		})
	case BackendRedis:
		password, err := secrets.Resolve(ctx, cfg.Redis.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve redis password: %w", err)
		}
		return NewRedis(ctx, &RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
			Logger:    logger,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", cfg.Backend)
	}
}

// Nop is a Backend that stores nothing.
type Nop struct{}

// NewNop returns a backend that always misses.
func NewNop() *Nop { return &Nop{} }

func (*Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (*Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*Nop) Delete(context.Context, string) error { return nil }

func (*Nop) Purge(context.Context) (int, error) { return 0, nil }

func (*Nop) Clear(context.Context) (int, error) { return 0, nil }

func (*Nop) Name() string { return BackendNone }

func (*Nop) Close() error { return nil }
