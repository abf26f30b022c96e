package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fivetwenty-io/zayo-client/internal/constants"
)

// Type represents the type of cache backend.
type Type string

const (
	// TypeMemory represents in-memory cache.
	TypeMemory Type = "memory"

	// TypeNATS represents NATS KV cache.
	TypeNATS Type = "nats"

	// TypeRedis represents Redis cache.
	TypeRedis Type = "redis"

	// TypeNone represents no caching.
	TypeNone Type = "none"
)

// Config configures a cache backend.
type Config struct {
	Type       Type
	TTL        time.Duration
	MaxEntries int

	NATS  *NATSKVConfig
	Redis *RedisConfig
}

// ParseType maps a user supplied name onto a Type. Empty means none.
func ParseType(name string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(name))); t {
	case "":
		return TypeNone, nil
	case TypeMemory, TypeNATS, TypeRedis, TypeNone:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedCacheType, name)
	}
}

// New creates a cache backend from configuration. Remote backends are
// fronted by a memory cache.
func New(ctx context.Context, cfg Config) (Cache, error) {
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = constants.DefaultCacheSize
	}

	switch cfg.Type {
	case TypeMemory:
		return NewMemoryCache(maxEntries), nil

	case TypeNATS:
		natsCfg := cfg.NATS
		if natsCfg == nil {
			return nil, ErrNATSURLRequired
		}

		if natsCfg.TTL == 0 {
			natsCfg.TTL = cfg.TTL
		}

		remote, err := NewNATSKVCache(ctx, natsCfg)
		if err != nil {
			return nil, err
		}

		return NewChain(NewMemoryCache(maxEntries), remote), nil

	case TypeRedis:
		remote, err := NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}

		return NewChain(NewMemoryCache(maxEntries), remote), nil

	case TypeNone, "":
		return NewNoOpCache(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, cfg.Type)
	}
}

// NoOpCache is a cache that does nothing (no caching).
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always returns ErrCacheDisabled.
func (c *NoOpCache) Get(ctx context.Context, key string) (*Entry, error) {
	return nil, ErrCacheDisabled
}

// Set does nothing.
func (c *NoOpCache) Set(ctx context.Context, key string, entry *Entry) error {
	return nil
}

// Delete does nothing.
func (c *NoOpCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear does nothing.
func (c *NoOpCache) Clear(ctx context.Context) error {
	return nil
}

// Has always returns false.
func (c *NoOpCache) Has(ctx context.Context, key string) bool {
	return false
}

// Close does nothing.
func (c *NoOpCache) Close() error {
	return nil
}

// Chain implements a chain of cache backends (L1, L2, etc.)
type Chain struct {
	caches []Cache
}

// NewChain creates a new cache chain.
func NewChain(caches ...Cache) *Chain {
	return &Chain{caches: caches}
}

// Get retrieves an item from the first cache holding it and populates the
// earlier layers.
func (c *Chain) Get(ctx context.Context, key string) (*Entry, error) {
	for i, cache := range c.caches {
		entry, err := cache.Get(ctx, key)
		if err == nil {
			for j := range i {
				_ = c.caches[j].Set(ctx, key, entry)
			}

			return entry, nil
		}
	}

	return nil, ErrCacheMiss
}

// Set stores an item in all caches.
func (c *Chain) Set(ctx context.Context, key string, entry *Entry) error {
	var errs []error

	for _, cache := range c.caches {
		if err := cache.Set(ctx, key, entry); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Delete removes an item from all caches.
func (c *Chain) Delete(ctx context.Context, key string) error {
	var errs []error

	for _, cache := range c.caches {
		if err := cache.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Clear removes all items from all caches.
func (c *Chain) Clear(ctx context.Context) error {
	var errs []error

	for _, cache := range c.caches {
		if err := cache.Clear(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Has checks if a key exists in any cache.
func (c *Chain) Has(ctx context.Context, key string) bool {
	for _, cache := range c.caches {
		if cache.Has(ctx, key) {
			return true
		}
	}

	return false
}

// Close closes every layer.
func (c *Chain) Close() error {
	var errs []error

	for _, cache := range c.caches {
		if err := cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
