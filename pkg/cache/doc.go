// Package cache stores raw Jikan API response bodies so that repeated
// requests are answered locally.
//
// A cache hit never reaches the rate limiter, which makes the cache the
// cheapest way to stay inside the API's quotas. Three backends are available:
//
//   - memory: in-process LRU (github.com/golang/groupcache/lru)
//   - sqlite: file backed, driver "sqlite" (modernc.org/sqlite) or
//     "sqlite3" (github.com/mattn/go-sqlite3, requires cgo)
//   - redis:  shared cache (github.com/redis/go-redis/v9)
//
// Use New to build the backend named in configuration:
//
//	backend, err := cache.New(ctx, &cfg.Cache, logger)
//	if err != nil {
//	    return err
//	}
//	defer backend.Close()
//
//	body, ok, err := backend.Get(ctx, cache.Key("GET", url))
package cache
