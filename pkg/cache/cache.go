// Package cache is the short-lived response cache for list endpoints.
//
// Entries are JSON-encoded and expire after their TTL. Writes elsewhere in
// the system do not invalidate entries, so readers may see data up to one
// TTL old.
package cache

import (
	"context"
	"time"

	"github.com/shashiranjanraj/stockroom/config"
	"github.com/shashiranjanraj/stockroom/pkg/logger"
	"github.com/shashiranjanraj/stockroom/pkg/metrics"
)

// Store maps keys to values with an expiry.
type Store interface {
	// Get decodes the value under key into dest. It reports false on a miss
	// or an expired entry.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set stores value under key for ttl, replacing any previous value.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Delete removes keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	// Driver names the backend, e.g. "memory" or "redis".
	Driver() string
}

// Remember returns the cached value under key, or calls load, caches its
// result for ttl and returns it. Cache failures degrade to calling load.
func Remember[T any](ctx context.Context, s Store, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T
	hit, err := s.Get(ctx, key, &cached)
	if err != nil {
		logger.WithCtx(ctx).Warn("cache: get failed", "key", key, "driver", s.Driver(), "error", err)
	}
	metrics.CacheLookup(s.Driver(), key, hit)
	if hit {
		return cached, nil
	}

	fresh, err := load(ctx)
	if err != nil {
		return fresh, err
	}

	if err := s.Set(ctx, key, fresh, ttl); err != nil {
		logger.WithCtx(ctx).Warn("cache: set failed", "key", key, "driver", s.Driver(), "error", err)
	}
	return fresh, nil
}

// Connect builds the store named by CACHE_DRIVER. An unreachable Redis falls
// back to the memory store.
func Connect(ctx context.Context) Store {
	if config.CacheDriver() != "redis" {
		return NewMemory()
	}

	rs, err := NewRedis(ctx, RedisOptions{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       config.RedisDB(),
	})
	if err != nil {
		logger.Warn("cache: redis unavailable, using memory store", "error", err)
		return NewMemory()
	}
	return rs
}
