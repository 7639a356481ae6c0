package search

import (
	"sync"
	"time"

	"github.com/insightstack/insightstack/internal/models"
)

// Result cache defaults.
const (
	DefaultCacheTTL      = 60 * time.Minute
	DefaultCacheCapacity = 100
)

type cacheEntry struct {
	timestamp time.Time
	results   []*models.StackSearchResult
}

// ResultCache memoizes ranked search results keyed by the raw query string
// used at call time. Entries expire after the TTL (checked lazily on Get) and
// the cache holds at most capacity entries; on overflow the entry with the
// globally-oldest timestamp is evicted, which can differ from insertion order
// once lazy TTL removal has thinned the set. Safe for concurrent use across
// requests.
type ResultCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	entries  map[string]*cacheEntry

	now func() time.Time // overridable in tests
}

// NewResultCache creates a cache with the given TTL and capacity. Zero or
// negative values fall back to the defaults.
func NewResultCache(ttl time.Duration, capacity int) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &ResultCache{
		ttl:      ttl,
		capacity: capacity,
		entries:  make(map[string]*cacheEntry),
		now:      time.Now,
	}
}

// Get returns the cached results for key if present and fresh. Expired or
// corrupt entries (timestamps in the future) are removed and treated as a
// miss, so the caller always falls back to recomputing.
func (c *ResultCache) Get(key string) ([]*models.StackSearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	age := c.now().Sub(entry.timestamp)
	if age > c.ttl || age < 0 {
		delete(c.entries, key)
		return nil, false
	}
	return entry.results, true
}

// Set stores results for key. If the cache exceeds capacity, the entry with
// the oldest timestamp is evicted.
func (c *ResultCache) Set(key string, results []*models.StackSearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &cacheEntry{timestamp: c.now(), results: results}

	if len(c.entries) <= c.capacity {
		return
	}
	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.timestamp.Before(oldest) {
			oldestKey = k
			oldest = e.timestamp
		}
	}
	delete(c.entries, oldestKey)
}

// Clear removes all entries.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Len returns the current number of entries, counting expired ones not yet
// lazily removed.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
