package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	c, err := NewRedisCache(context.Background(), "redis://"+mr.Addr(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, "dictionary:word:hello")
	assert.False(t, ok)

	require.True(t, c.Set(ctx, "dictionary:word:hello", `[{"word":"hello"}]`, time.Hour))

	v, ok := c.Get(ctx, "dictionary:word:hello")
	require.True(t, ok)
	assert.Equal(t, `[{"word":"hello"}]`, v)
	assert.Equal(t, time.Hour, mr.TTL("dictionary:word:hello"))

	assert.True(t, c.Delete(ctx, "dictionary:word:hello"))
	assert.True(t, c.Delete(ctx, "dictionary:word:hello"))
	_, ok = c.Get(ctx, "dictionary:word:hello")
	assert.False(t, ok)
}

func TestRedisCache_Expiry(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	require.True(t, c.Set(ctx, "k", "v", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedisCache_FailOpen(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()
	require.True(t, c.Set(ctx, "k", "v", 0))

	mr.Close()

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.False(t, c.Set(ctx, "k", "v", time.Minute))
	assert.False(t, c.Delete(ctx, "k"))
	assert.Error(t, c.Ping(ctx))
}

func TestNewRedisCache_UnreachableServer(t *testing.T) {
	c, err := NewRedisCache(context.Background(), "redis://127.0.0.1:1", nil)
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.Get(context.Background(), "k")
	assert.False(t, ok)
}

func TestNewRedisCache_BadURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not-a-url://", nil)
	assert.Error(t, err)
}

func TestRedisCache_Nil(t *testing.T) {
	var c *RedisCache
	ctx := context.Background()

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.False(t, c.Set(ctx, "k", "v", time.Minute))
	assert.True(t, c.Delete(ctx, "k"), "nothing to invalidate")
	assert.Nil(t, c.Client())
	assert.NoError(t, c.Close())
}

func TestNewFromClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewFromClient(client, nil)

	assert.Same(t, client, c.Client())
	require.True(t, c.Set(context.Background(), "k", "v", 0))
	assert.True(t, mr.Exists("k"))
}
