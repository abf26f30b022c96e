// Package cache stores immutable API records (notification details) so
// repeated lookups skip the network. Backends: in-process memory, a NATS
// JetStream key/value bucket, Redis, or nothing at all.
package cache

import (
	"context"
	"errors"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrCacheMiss            = errors.New("cache miss")
	ErrCacheDisabled        = errors.New("cache disabled")
	ErrUnsupportedCacheType = errors.New("unsupported cache type")
	ErrNATSURLRequired      = errors.New("NATS URL required for NATS cache")
	ErrRedisAddrRequired    = errors.New("redis address required for Redis cache")
	ErrNilEntry             = errors.New("cache entry cannot be nil")
	ErrEntryTooLarge        = errors.New("cache entry exceeds maximum size")
)

// Cache is a key/value store for raw record bodies.
type Cache interface {
	// Get returns ErrCacheMiss when key is absent or expired.
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry *Entry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
	Close() error
}

// Entry is one cached record.
type Entry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewEntry wraps data with an expiry ttl from now. A non-positive ttl never
// expires.
func NewEntry(data []byte, ttl time.Duration) *Entry {
	entry := &Entry{Data: data}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	return entry
}

// Expired reports whether the entry is past its expiry.
func (e *Entry) Expired() bool {
	return !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)
}

// TTL returns the remaining lifetime, zero when the entry never expires.
func (e *Entry) TTL() time.Duration {
	if e.ExpiresAt.IsZero() {
		return 0
	}

	return time.Until(e.ExpiresAt)
}
