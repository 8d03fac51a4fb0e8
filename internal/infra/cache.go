package infra

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/olgasafonova/whatsonchain-mcp-server/metrics"
)

// Cache size limits to prevent unbounded memory growth
const (
	DefaultMaxCacheEntries = 1000 // Maximum number of cached responses
)

// Cache provides an LRU cache for HTTP responses. A zero TTL keeps entries
// for the lifetime of the process, bounded only by the entry limit.
type Cache struct {
	lru        *expirable.LRU[string, any]
	maxEntries int
}

// NewCache creates a new LRU cache with the specified max entries and TTL
func NewCache(maxEntries int, ttl time.Duration) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxCacheEntries
	}
	return &Cache{
		lru:        expirable.NewLRU[string, any](maxEntries, nil, ttl),
		maxEntries: maxEntries,
	}
}

// Get retrieves a cached value if it exists and hasn't expired
func (c *Cache) Get(key string) (any, bool) {
	v, ok := c.lru.Get(key)
	metrics.RecordCacheAccess(ok)
	return v, ok
}

// Set stores a value in the cache
func (c *Cache) Set(key string, data any) {
	if evicted := c.lru.Add(key, data); evicted {
		metrics.CacheEvictions.Inc()
	}
	metrics.SetCacheSize(int64(c.lru.Len()))
}

// Size returns the current number of entries in the cache
func (c *Cache) Size() int {
	return c.lru.Len()
}

// MaxEntries returns the entry limit
func (c *Cache) MaxEntries() int {
	return c.maxEntries
}

// Close drops all cached entries
func (c *Cache) Close() {
	c.lru.Purge()
	metrics.SetCacheSize(0)
}
