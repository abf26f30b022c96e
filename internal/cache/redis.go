package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fivetwenty-io/zayo-client/internal/constants"
)

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	// Client reuses an existing client instead of dialling Addr.
	Client *redis.Client
}

// RedisCache stores entries as JSON strings with a Redis TTL.
type RedisCache struct {
	client    *redis.Client
	ownClient bool
	prefix    string
}

// NewRedisCache creates a Redis-backed cache and checks connectivity.
func NewRedisCache(ctx context.Context, cfg *RedisConfig) (*RedisCache, error) {
	if cfg == nil || (cfg.Client == nil && cfg.Addr == "") {
		return nil, ErrRedisAddrRequired
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = constants.DefaultRedisPrefix
	}

	client := cfg.Client
	ownClient := false

	if client == nil {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		ownClient = true
	}

	if err := client.Ping(ctx).Err(); err != nil {
		if ownClient {
			_ = client.Close()
		}

		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{client: client, ownClient: ownClient, prefix: prefix}, nil
}

// Get retrieves an entry.
func (c *RedisCache) Get(ctx context.Context, key string) (*Entry, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			cacheMissesTotal.WithLabelValues(backendRedis).Inc()

			return nil, ErrCacheMiss
		}

		cacheErrorsTotal.WithLabelValues(backendRedis, "get").Inc()

		return nil, fmt.Errorf("redis get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		cacheErrorsTotal.WithLabelValues(backendRedis, "get").Inc()

		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}

	if entry.Expired() {
		_ = c.Delete(ctx, key)
		cacheMissesTotal.WithLabelValues(backendRedis).Inc()

		return nil, ErrCacheMiss
	}

	cacheHitsTotal.WithLabelValues(backendRedis).Inc()

	return &entry, nil
}

// Set stores an entry. Already expired entries are not written.
func (c *RedisCache) Set(ctx context.Context, key string, entry *Entry) error {
	if entry == nil {
		return ErrNilEntry
	}

	ttl := entry.TTL()
	if !entry.ExpiresAt.IsZero() && ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	if len(data) > constants.MaxCacheValueSize {
		return ErrEntryTooLarge
	}

	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		cacheErrorsTotal.WithLabelValues(backendRedis, "set").Inc()

		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Delete removes an entry.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		cacheErrorsTotal.WithLabelValues(backendRedis, "delete").Inc()

		return fmt.Errorf("redis del: %w", err)
	}

	return nil
}

// Clear removes every key under the prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 0).Iterator()

	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}

	return nil
}

// Has reports whether a live entry exists for key.
func (c *RedisCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close releases the client if the cache created it.
func (c *RedisCache) Close() error {
	if c.ownClient {
		return c.client.Close()
	}

	return nil
}
