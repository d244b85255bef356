package qb

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrCacheKeyNotFound  = errors.New("key not found")
	ErrCacheEntryExpired = errors.New("cache entry expired")
)

// CacheEntry is one stored response payload. Staleness is determined
// purely by comparing ExpiresAt to the current time at read time; no
// backend is expected to sweep entries in the background.
type CacheEntry struct {
	Data      []byte    `json:"data"`
	StoredAt  time.Time `json:"storedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the entry is stale at the given instant.
func (e *CacheEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Cache is the interface for response cache backends.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// MemoryCache is a bounded in-memory cache backend.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*CacheEntry
	maxSize int
}

// NewMemoryCache creates a new memory cache holding at most maxSize
// entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*CacheEntry),
		maxSize: maxSize,
	}
}

// Get retrieves an unexpired entry.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
	}

	if entry.Expired(time.Now()) {
		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return entry, nil
}

// Set stores an entry, overwriting any prior entry for the same key.
// When the cache is full, the entry closest to expiry is evicted.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, exists := c.entries[key]
	if !exists && c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = entry

	return nil
}

// evictOldest removes the entry with the earliest expiry. Caller holds
// the write lock.
func (c *MemoryCache) evictOldest() {
	var (
		oldestKey    string
		oldestExpiry time.Time
	)

	for key, entry := range c.entries {
		if oldestKey == "" || entry.ExpiresAt.Before(oldestExpiry) {
			oldestKey = key
			oldestExpiry = entry.ExpiresAt
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// Delete removes an entry.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)

	return nil
}

// Clear removes every entry.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*CacheEntry)

	return nil
}

// Has reports whether an unexpired entry exists for the key.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]

	return ok && !entry.Expired(time.Now())
}

// Cleanup removes expired entries. Optional housekeeping; Get already
// treats expired entries as absent.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()

	for key, entry := range c.entries {
		if entry.Expired(now) {
			delete(c.entries, key)
		}
	}
}

// CacheStats tracks cache effectiveness.
type CacheStats struct {
	Hits   int64 `json:"hits"   yaml:"hits"`
	Misses int64 `json:"misses" yaml:"misses"`
	Sets   int64 `json:"sets"   yaml:"sets"`
	Errors int64 `json:"errors" yaml:"errors"`
}

// GetHitRate returns the fraction of lookups served from cache.
func (s *CacheStats) GetHitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

// CacheManager wraps a Cache backend with TTL bookkeeping, statistics,
// and the failure policy: a backend read error degrades to a miss and a
// backend write error to a no-op, both logged at Warn. Cache trouble
// must never fail the caller's query.
type CacheManager struct {
	cache  Cache
	logger Logger
	mu     sync.Mutex
	stats  CacheStats
}

// NewCacheManager creates a new cache manager. Logger may be nil.
func NewCacheManager(cache Cache, logger Logger) *CacheManager {
	return &CacheManager{
		cache:  cache,
		logger: logger,
	}
}

// Get returns the cached payload for key, or an error when the entry is
// absent, expired, or the backend failed.
func (m *CacheManager) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := m.cache.Get(ctx, key)
	if err != nil {
		m.mu.Lock()
		m.stats.Misses++

		if !errors.Is(err, ErrCacheKeyNotFound) && !errors.Is(err, ErrCacheEntryExpired) {
			m.stats.Errors++
			m.warn("cache read failed, treating as miss", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		m.mu.Unlock()

		return nil, fmt.Errorf("cache lookup: %w", err)
	}

	m.mu.Lock()
	m.stats.Hits++
	m.mu.Unlock()

	return entry.Data, nil
}

// Set stores a payload with the given TTL. Backend failures are logged
// and swallowed.
func (m *CacheManager) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	now := time.Now()
	entry := &CacheEntry{
		Data:      data,
		StoredAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	err := m.cache.Set(ctx, key, entry)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.stats.Errors++
		m.warn("cache write failed, skipping", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})

		return nil
	}

	m.stats.Sets++

	return nil
}

// Clear removes every entry from the backend.
func (m *CacheManager) Clear(ctx context.Context) error {
	err := m.cache.Clear(ctx)
	if err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	return nil
}

// GetStats returns a snapshot of the cache statistics.
func (m *CacheManager) GetStats() CacheStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.stats
}

func (m *CacheManager) warn(msg string, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.Warn(msg, fields)
	}
}

// queryKeyPayload fixes the serialization order of the query shape.
// Struct fields marshal in declaration order, so identical queries
// always produce identical bytes.
type queryKeyPayload struct {
	Realm   string        `json:"realm"`
	From    string        `json:"from"`
	Select  []int         `json:"select"`
	Where   string        `json:"where"`
	SortBy  []SortField   `json:"sortBy"`
	Options *QueryOptions `json:"options"`
}

// QueryKey derives the deterministic cache key for a query shape.
// Order-sensitive: reordering selected fields or sort terms produces a
// different key.
func QueryKey(realm string, request *QueryRequest) string {
	payload, _ := json.Marshal(queryKeyPayload{
		Realm:   realm,
		From:    request.From,
		Select:  request.Select,
		Where:   request.Where,
		SortBy:  request.SortBy,
		Options: request.Options,
	})

	sum := sha256.Sum256(payload)

	return "query:" + hex.EncodeToString(sum[:])
}
