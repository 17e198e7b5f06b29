package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces cache keys in a shared Redis database.
const DefaultKeyPrefix = "jikan:"

// Redis stores cached responses in Redis. Expiry is delegated to Redis key
// TTLs, so Purge has nothing to do.
type Redis struct {
	client    redis.UniversalClient
	prefix    string
	logger    *slog.Logger
	closeOnce sync.Once
}

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	// Addr is the server address (e.g. "localhost:6379").
	Addr string

	// Password is optional.
	Password string

	// DB is the database number.
	DB int

	// KeyPrefix is prepended to every key. Default: "jikan:"
	KeyPrefix string

	// DialTimeout bounds the connectivity check in NewRedis.
	// Default: 5 seconds
	DialTimeout time.Duration

	// Logger. Default: slog.Default().
	Logger *slog.Logger
}

// NewRedis connects to Redis and verifies the connection with PING.
func NewRedis(ctx context.Context, cfg *RedisConfig) (*Redis, error) {
	if cfg == nil || cfg.Addr == "" {
		return nil, fmt.Errorf("redis cache: addr cannot be empty")
	}
	timeout := cfg.DialTimeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, newError(BackendRedis, "ping", err)
	}

	return NewRedisWithClient(client, cfg.KeyPrefix, cfg.Logger), nil
}

// NewRedisWithClient wraps an existing client. An empty prefix uses
// DefaultKeyPrefix.
func NewRedisWithClient(client redis.UniversalClient, prefix string, logger *slog.Logger) *Redis {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Redis{
		client: client,
		prefix: prefix,
		logger: logger.With("component", "cache.redis"),
	}
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

// Get returns the cached value for key.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, newError(BackendRedis, "get", err)
	}
	return val, true, nil
}

// Set stores value with ttl (0 = no expiry).
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return newError(BackendRedis, "set", err)
	}
	return nil
}

// Delete removes key.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return newError(BackendRedis, "delete", err)
	}
	return nil
}

// Purge is a no-op; Redis expires keys itself.
func (r *Redis) Purge(context.Context) (int, error) {
	return 0, nil
}

// Clear deletes every key under the prefix using SCAN so the server is never
// blocked by KEYS.
func (r *Redis) Clear(ctx context.Context) (int, error) {
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+"*", 100).Result()
		if err != nil {
			return removed, newError(BackendRedis, "scan", err)
		}
		if len(keys) > 0 {
			n, err := r.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, newError(BackendRedis, "clear", err)
			}
			removed += int(n)
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	r.logger.Debug("cleared redis cache", "prefix", r.prefix, "count", removed)
	return removed, nil
}

// Name returns "redis".
func (r *Redis) Name() string { return BackendRedis }

// Close closes the client. Close is idempotent.
func (r *Redis) Close() error {
	var err error
	r.closeOnce.Do(func() {
		err = r.client.Close()
	})
	return err
}
