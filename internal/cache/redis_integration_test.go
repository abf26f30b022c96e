//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/fivetwenty-io/zayo-client/internal/cache"
)

// setupRedis starts a Redis container and returns its address.
func setupRedis(t *testing.T) string {
	t.Helper()

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return host + ":" + port.Port()
}

func TestRedisCache(t *testing.T) {
	addr := setupRedis(t)
	ctx := context.Background()

	c, err := cache.NewRedisCache(ctx, &cache.RedisConfig{Addr: addr})
	require.NoError(t, err)

	t.Cleanup(func() { _ = c.Close() })

	entry := cache.NewEntry([]byte(`{"name":"TTN-0001"}`), time.Hour)

	_, err = c.Get(ctx, "TTN-0001")
	require.ErrorIs(t, err, cache.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "TTN-0001", entry))

	got, err := c.Get(ctx, "TTN-0001")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, got.Data)

	// Stored with a Redis TTL under the default prefix.
	raw := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = raw.Close() })

	ttl, err := raw.TTL(ctx, "zayo:TTN-0001").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)

	require.NoError(t, c.Delete(ctx, "TTN-0001"))
	assert.False(t, c.Has(ctx, "TTN-0001"))

	require.NoError(t, c.Set(ctx, "a", entry))
	require.NoError(t, c.Set(ctx, "b", entry))
	require.NoError(t, raw.Set(ctx, "other:key", "keep", 0).Err())
	require.NoError(t, c.Clear(ctx))
	assert.False(t, c.Has(ctx, "a"))

	kept, err := raw.Get(ctx, "other:key").Result()
	require.NoError(t, err)
	assert.Equal(t, "keep", kept)
}

func TestRedisCache_SkipsExpiredEntries(t *testing.T) {
	addr := setupRedis(t)
	ctx := context.Background()

	c, err := cache.NewRedisCache(ctx, &cache.RedisConfig{Addr: addr, Prefix: "test:"})
	require.NoError(t, err)

	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Set(ctx, "old", &cache.Entry{Data: []byte("x"), ExpiresAt: time.Now().Add(-time.Minute)}))
	assert.False(t, c.Has(ctx, "old"))
}
