package qb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSKVConfig configures the NATS JetStream KV cache backend.
type NATSKVConfig struct {
	// URL is the NATS server URL, e.g. nats://localhost:4222.
	URL string

	// Bucket is the KV bucket name. Created if it does not exist.
	Bucket string

	// CredsFile is an optional NATS credentials file.
	CredsFile string
}

// NATSKVCache stores response payloads in a NATS JetStream KV bucket,
// letting cache entries survive process restarts and be shared between
// processes. Expiry stays lazy: entries carry their own ExpiresAt and
// Get treats stale entries as absent.
type NATSKVCache struct {
	conn   *nats.Conn
	bucket nats.KeyValue
}

// NewNATSKVCache connects to NATS and opens (or creates) the bucket.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	var opts []nats.Option
	if config.CredsFile != "" {
		opts = append(opts, nats.UserCredentials(config.CredsFile))
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("getting JetStream context: %w", err)
	}

	bucket, err := js.KeyValue(config.Bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		bucket, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket: config.Bucket,
		})
	}

	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("opening KV bucket %q: %w", config.Bucket, err)
	}

	return &NATSKVCache{conn: conn, bucket: bucket}, nil
}

// kvKey maps a cache key onto the NATS KV key charset (colons are not
// permitted in KV keys).
func kvKey(key string) string {
	return strings.ReplaceAll(key, ":", ".")
}

// Get retrieves an unexpired entry.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	kve, err := c.bucket.Get(kvKey(key))
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
		}

		return nil, fmt.Errorf("reading KV entry: %w", err)
	}

	var entry CacheEntry

	err = json.Unmarshal(kve.Value(), &entry)
	if err != nil {
		return nil, fmt.Errorf("decoding KV entry: %w", err)
	}

	if entry.Expired(time.Now()) {
		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return &entry, nil
}

// Set stores an entry, overwriting any prior entry for the same key.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding KV entry: %w", err)
	}

	_, err = c.bucket.Put(kvKey(key), data)
	if err != nil {
		return fmt.Errorf("writing KV entry: %w", err)
	}

	return nil
}

// Delete removes an entry.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.bucket.Delete(kvKey(key))
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting KV entry: %w", err)
	}

	return nil
}

// Clear removes every entry from the bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.bucket.Keys()
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("listing KV keys: %w", err)
	}

	for _, key := range keys {
		err = c.bucket.Purge(key)
		if err != nil {
			return fmt.Errorf("purging KV entry: %w", err)
		}
	}

	return nil
}

// Has reports whether an unexpired entry exists for the key.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close closes the NATS connection.
func (c *NATSKVCache) Close() {
	c.conn.Close()
}
