package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a fail-open string cache. Every backend error is logged and
// reported to the caller as a miss or a false write; none is returned.
// A nil *RedisCache behaves as an always-empty cache.
type RedisCache struct {
	client *redis.Client
	log    *slog.Logger
}

// NewRedisCache parses redisURL (redis://host:port[/db]) and connects. An
// unreachable server is logged and tolerated; only a malformed URL fails.
func NewRedisCache(ctx context.Context, redisURL string, log *slog.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}

	c := &RedisCache{client: redis.NewClient(opts), log: log.With("component", "cache")}
	if err := c.Ping(ctx); err != nil {
		c.log.Warn("redis unavailable, continuing without cache", "addr", opts.Addr, "error", err)
	} else {
		c.log.Info("connected to redis", "addr", opts.Addr)
	}
	return c, nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client *redis.Client, log *slog.Logger) *RedisCache {
	if log == nil {
		log = slog.Default()
	}
	return &RedisCache{client: client, log: log.With("component", "cache")}
}

// Client exposes the underlying connection so other Redis-backed components
// can share it.
func (c *RedisCache) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.client
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache get failed", "key", key, "error", err)
		}
		return "", false
	}
	return v, true
}

// Set stores value under key. A non-positive ttl stores without expiry.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) bool {
	if c == nil {
		return false
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Warn("cache set failed", "key", key, "error", err)
		return false
	}
	return true
}

// Delete removes key. Deleting a missing key succeeds, and so does deleting
// from an unconfigured cache since there is nothing to invalidate.
func (c *RedisCache) Delete(ctx context.Context, key string) bool {
	if c == nil {
		return true
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Warn("cache delete failed", "key", key, "error", err)
		return false
	}
	return true
}

func (c *RedisCache) Ping(ctx context.Context) error {
	if c == nil {
		return errors.New("cache not configured")
	}
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
