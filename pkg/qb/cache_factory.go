package qb

import (
	"context"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/quickbase-client/internal/constants"
)

// CacheType represents the type of cache backend.
type CacheType string

const (
	// CacheTypeMemory represents in-memory cache.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS represents NATS KV cache.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeNone represents no caching.
	CacheTypeNone CacheType = "none"
)

// Static errors for err113 compliance.
var (
	ErrNATSConfigRequired    = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCacheType  = errors.New("unsupported cache type")
	ErrCacheDisabled         = errors.New("cache disabled")
	ErrKeyNotFoundInAnyCache = errors.New("key not found in any cache")
)

// CacheConfig configures the response cache backend.
type CacheConfig struct {
	// Type is the cache backend type
	Type CacheType

	// Memory cache configuration
	Memory *MemoryCacheConfig

	// NATS KV cache configuration
	NATS *NATSKVConfig
}

// MemoryCacheConfig configures the memory cache.
type MemoryCacheConfig struct {
	// MaxSize is the maximum number of items in the cache
	MaxSize int
}

// DefaultCacheConfig returns default cache configuration.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Type: CacheTypeMemory,
		Memory: &MemoryCacheConfig{
			MaxSize: constants.DefaultCacheSize,
		},
	}
}

// NewCacheFromConfig creates a cache backend from configuration.
func NewCacheFromConfig(config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Type {
	case CacheTypeMemory:
		return NewMemoryCacheFromConfig(config.Memory), nil

	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		return NewNATSKVCache(config.NATS)

	case CacheTypeNone:
		return NewNoOpCache(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}
}

// NewMemoryCacheFromConfig creates a memory cache from configuration.
func NewMemoryCacheFromConfig(config *MemoryCacheConfig) Cache {
	if config == nil {
		config = &MemoryCacheConfig{
			MaxSize: constants.DefaultCacheSize,
		}
	}

	return NewMemoryCache(config.MaxSize)
}

// NoOpCache is a cache that does nothing (no caching).
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always returns an error (nothing cached).
func (c *NoOpCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	return nil, ErrCacheDisabled
}

// Set does nothing.
func (c *NoOpCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
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

// CacheBuilder helps build cache configurations.
type CacheBuilder struct {
	config *CacheConfig
}

// NewCacheBuilder creates a new cache builder.
func NewCacheBuilder() *CacheBuilder {
	return &CacheBuilder{
		config: &CacheConfig{
			Type: CacheTypeMemory,
		},
	}
}

// WithType sets the cache type.
func (b *CacheBuilder) WithType(cacheType CacheType) *CacheBuilder {
	b.config.Type = cacheType

	return b
}

// WithMemoryConfig sets memory cache configuration.
func (b *CacheBuilder) WithMemoryConfig(maxSize int) *CacheBuilder {
	b.config.Memory = &MemoryCacheConfig{
		MaxSize: maxSize,
	}

	return b
}

// WithNATSConfig sets NATS cache configuration.
func (b *CacheBuilder) WithNATSConfig(config *NATSKVConfig) *CacheBuilder {
	b.config.NATS = config

	return b
}

// Build creates the cache from the configuration.
func (b *CacheBuilder) Build() (Cache, error) {
	return NewCacheFromConfig(b.config)
}

// CacheChain implements a chain of cache backends (L1, L2, etc.), e.g.
// a process-local memory cache in front of a shared NATS KV bucket.
type CacheChain struct {
	caches []Cache
}

// NewCacheChain creates a new cache chain.
func NewCacheChain(caches ...Cache) *CacheChain {
	return &CacheChain{
		caches: caches,
	}
}

// Get retrieves an item from the cache chain.
func (c *CacheChain) Get(ctx context.Context, key string) (*CacheEntry, error) {
	for i, cache := range c.caches {
		entry, err := cache.Get(ctx, key)
		if err == nil {
			// Found in this cache, populate earlier caches
			for j := range i {
				_ = c.caches[j].Set(ctx, key, entry)
			}

			return entry, nil
		}
	}

	return nil, ErrKeyNotFoundInAnyCache
}

// Set stores an item in all caches.
func (c *CacheChain) Set(ctx context.Context, key string, entry *CacheEntry) error {
	var lastErr error

	for _, cache := range c.caches {
		err := cache.Set(ctx, key, entry)
		if err != nil {
			lastErr = err
		}
	}

	return lastErr
}

// Delete removes an item from all caches.
func (c *CacheChain) Delete(ctx context.Context, key string) error {
	var lastErr error

	for _, cache := range c.caches {
		err := cache.Delete(ctx, key)
		if err != nil {
			lastErr = err
		}
	}

	return lastErr
}

// Clear removes all items from all caches.
func (c *CacheChain) Clear(ctx context.Context) error {
	var lastErr error

	for _, cache := range c.caches {
		err := cache.Clear(ctx)
		if err != nil {
			lastErr = err
		}
	}

	return lastErr
}

// Has checks if a key exists in any cache.
func (c *CacheChain) Has(ctx context.Context, key string) bool {
	for _, cache := range c.caches {
		if cache.Has(ctx, key) {
			return true
		}
	}

	return false
}
