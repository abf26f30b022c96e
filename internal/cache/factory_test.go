package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zayo-client/internal/cache"
)

func TestNew(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		t.Parallel()

		c, err := cache.New(ctx, cache.Config{Type: cache.TypeMemory, MaxEntries: 5})
		require.NoError(t, err)
		assert.IsType(t, &cache.MemoryCache{}, c)
	})

	t.Run("none", func(t *testing.T) {
		t.Parallel()

		c, err := cache.New(ctx, cache.Config{Type: cache.TypeNone})
		require.NoError(t, err)

		require.NoError(t, c.Set(ctx, "k", cache.NewEntry([]byte("v"), time.Hour)))
		_, err = c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrCacheDisabled)
		assert.False(t, c.Has(ctx, "k"))
		require.NoError(t, c.Close())
	})

	t.Run("empty type is none", func(t *testing.T) {
		t.Parallel()

		c, err := cache.New(ctx, cache.Config{})
		require.NoError(t, err)
		assert.IsType(t, &cache.NoOpCache{}, c)
	})

	t.Run("invalid type", func(t *testing.T) {
		t.Parallel()

		c, err := cache.New(ctx, cache.Config{Type: cache.Type("invalid")})
		require.ErrorIs(t, err, cache.ErrUnsupportedCacheType)
		assert.Nil(t, c)
	})

	t.Run("nats without config", func(t *testing.T) {
		t.Parallel()

		_, err := cache.New(ctx, cache.Config{Type: cache.TypeNATS})
		require.ErrorIs(t, err, cache.ErrNATSURLRequired)
	})

	t.Run("redis without config", func(t *testing.T) {
		t.Parallel()

		_, err := cache.New(ctx, cache.Config{Type: cache.TypeRedis})
		require.ErrorIs(t, err, cache.ErrRedisAddrRequired)
	})
}

func TestParseType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    cache.Type
		wantErr bool
	}{
		{in: "", want: cache.TypeNone},
		{in: "memory", want: cache.TypeMemory},
		{in: " NATS ", want: cache.TypeNATS},
		{in: "Redis", want: cache.TypeRedis},
		{in: "none", want: cache.TypeNone},
		{in: "memcached", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := cache.ParseType(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, cache.ErrUnsupportedCacheType)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChain(t *testing.T) {
	t.Parallel()

	l1 := cache.NewMemoryCache(10)
	l2 := cache.NewMemoryCache(100)
	chain := cache.NewChain(l1, l2)
	ctx := context.Background()

	entry := cache.NewEntry([]byte("chain test"), time.Hour)

	require.NoError(t, chain.Set(ctx, "chain-key", entry))
	assert.True(t, l1.Has(ctx, "chain-key"))
	assert.True(t, l2.Has(ctx, "chain-key"))

	require.NoError(t, l1.Delete(ctx, "chain-key"))

	// Served from L2 and copied back into L1.
	retrieved, err := chain.Get(ctx, "chain-key")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
	assert.True(t, l1.Has(ctx, "chain-key"))

	require.NoError(t, chain.Delete(ctx, "chain-key"))
	assert.False(t, chain.Has(ctx, "chain-key"))

	_, err = chain.Get(ctx, "chain-key")
	require.ErrorIs(t, err, cache.ErrCacheMiss)

	require.NoError(t, chain.Set(ctx, "a", entry))
	require.NoError(t, chain.Clear(ctx))
	assert.False(t, l2.Has(ctx, "a"))
	require.NoError(t, chain.Close())
}
