package cache

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/fivetwenty-io/zayo-client/internal/constants"
)

// NATSKVConfig configures the JetStream key/value backend.
type NATSKVConfig struct {
	URL    string
	Bucket string
	// TTL bounds every key in the bucket. Entries may carry a shorter expiry.
	TTL time.Duration
	// Conn reuses an existing connection instead of dialling URL.
	Conn *nats.Conn
}

// NATSKVCache stores entries in a JetStream key/value bucket.
type NATSKVCache struct {
	conn    *nats.Conn
	ownConn bool
	kv      jetstream.KeyValue
}

// NewNATSKVCache connects (unless cfg.Conn is set) and creates or updates
// the bucket.
func NewNATSKVCache(ctx context.Context, cfg *NATSKVConfig) (*NATSKVCache, error) {
	if cfg == nil || (cfg.Conn == nil && cfg.URL == "") {
		return nil, ErrNATSURLRequired
	}

	bucket := cfg.Bucket
	if bucket == "" {
		bucket = constants.DefaultNATSBucket
	}

	conn := cfg.Conn
	ownConn := false

	if conn == nil {
		var err error

		conn, err = nats.Connect(cfg.URL, nats.Name(constants.DefaultUserAgent))
		if err != nil {
			return nil, fmt.Errorf("connecting to NATS: %w", err)
		}

		ownConn = true
	}

	js, err := jetstream.New(conn)
	if err != nil {
		closeIfOwned(conn, ownConn)

		return nil, fmt.Errorf("creating JetStream context: %w", err)
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:       bucket,
		Description:  "Zayo API record cache",
		TTL:          cfg.TTL,
		MaxValueSize: constants.MaxCacheValueSize,
	})
	if err != nil {
		closeIfOwned(conn, ownConn)

		return nil, fmt.Errorf("creating KV bucket %s: %w", bucket, err)
	}

	return &NATSKVCache{conn: conn, ownConn: ownConn, kv: kv}, nil
}

// Get retrieves an entry.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*Entry, error) {
	kve, err := c.kv.Get(ctx, encodeKey(key))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			cacheMissesTotal.WithLabelValues(backendNATS).Inc()

			return nil, ErrCacheMiss
		}

		cacheErrorsTotal.WithLabelValues(backendNATS, "get").Inc()

		return nil, fmt.Errorf("nats kv get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(kve.Value(), &entry); err != nil {
		cacheErrorsTotal.WithLabelValues(backendNATS, "get").Inc()

		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}

	if entry.Expired() {
		_ = c.Delete(ctx, key)
		cacheMissesTotal.WithLabelValues(backendNATS).Inc()

		return nil, ErrCacheMiss
	}

	cacheHitsTotal.WithLabelValues(backendNATS).Inc()

	return &entry, nil
}

// Set stores an entry.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *Entry) error {
	if entry == nil {
		return ErrNilEntry
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	if len(data) > constants.MaxCacheValueSize {
		return ErrEntryTooLarge
	}

	if _, err := c.kv.Put(ctx, encodeKey(key), data); err != nil {
		cacheErrorsTotal.WithLabelValues(backendNATS, "set").Inc()

		return fmt.Errorf("nats kv put: %w", err)
	}

	return nil
}

// Delete removes an entry.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Purge(ctx, encodeKey(key))
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		cacheErrorsTotal.WithLabelValues(backendNATS, "delete").Inc()

		return fmt.Errorf("nats kv purge: %w", err)
	}

	return nil
}

// Clear purges every key in the bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	lister, err := c.kv.ListKeys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("nats kv list: %w", err)
	}

	var keys []string
	for key := range lister.Keys() {
		keys = append(keys, key)
	}

	_ = lister.Stop()

	for _, key := range keys {
		if err := c.kv.Purge(ctx, key); err != nil {
			return fmt.Errorf("nats kv purge: %w", err)
		}
	}

	return nil
}

// Has reports whether a live entry exists for key.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close drops the connection if the cache dialled it.
func (c *NATSKVCache) Close() error {
	closeIfOwned(c.conn, c.ownConn)

	return nil
}

// encodeKey maps arbitrary record names onto the KV key alphabet.
func encodeKey(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}

func closeIfOwned(conn *nats.Conn, owned bool) {
	if owned && conn != nil {
		conn.Close()
	}
}
