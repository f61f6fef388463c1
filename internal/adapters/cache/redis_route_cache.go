// Package cache provides the Redis-backed route cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trip-planner-service/internal/platform/obs"
)

// RedisRouteCache stores JSON-encoded route results under TTL keys. A miss
// is not an error; transport failures are.
type RedisRouteCache struct {
	client *redis.Client
}

func NewRedisRouteCache(addr, password string, db int) (*RedisRouteCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	return &RedisRouteCache{client: client}, nil
}

func (c *RedisRouteCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		obs.ObserveCache("routes", "miss")
		return false, nil
	}
	if err != nil {
		obs.ObserveCache("routes", "error")
		return false, fmt.Errorf("cache get %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		// A corrupt entry behaves like a miss so the caller refetches.
		obs.ObserveCache("routes", "error")
		return false, nil
	}

	obs.ObserveCache("routes", "hit")
	return true, nil
}

func (c *RedisRouteCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache set %q: marshal: %w", key, err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	obs.ObserveCache("routes", "set")
	return nil
}

func (c *RedisRouteCache) Close() error {
	return c.client.Close()
}
