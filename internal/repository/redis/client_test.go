package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/iamasit07/4-in-a-row/engine/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := InitRedis(&config.Config{RedisURL: mr.Addr()})
	require.NoError(t, err)
	require.NotNil(t, client)

	cache := NewRedisCache(client)
	t.Cleanup(func() { cache.Close() })
	return cache, mr
}

func TestRedisCacheSetGetDel(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "game:abc", `{"board":"0"}`, time.Hour))
	assert.Equal(t, time.Hour, mr.TTL("game:abc"))

	val, err := cache.Get(ctx, "game:abc")
	require.NoError(t, err)
	assert.Equal(t, `{"board":"0"}`, val)

	require.NoError(t, cache.Del(ctx, "game:abc"))
	assert.False(t, mr.Exists("game:abc"))
}

func TestRedisCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.Get(context.Background(), "game:missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "game:old", "x", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx, "game:old")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheServerDown(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()

	_, err := cache.Get(context.Background(), "game:any")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestInitRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client, err := InitRedis(&config.Config{RedisURL: addr})
	assert.NoError(t, err)
	assert.Nil(t, client)
}
