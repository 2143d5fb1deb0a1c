package views

import (
	"strings"
	"sync"
	"time"
)

const (
	// cacheTTL is how long a cached count is trusted as fresh.
	cacheTTL = 10 * time.Minute

	// staleCacheMaxAge is the cutoff past which a cached count is not
	// usable even as a degraded fallback.
	staleCacheMaxAge = time.Hour
)

// CachedCount is a view count together with the moment it was cached.
type CachedCount struct {
	Count    int
	CachedAt time.Time
}

// Expired reports whether the entry is no longer trusted as fresh.
func (c CachedCount) Expired(now time.Time) bool {
	return now.Sub(c.CachedAt) > cacheTTL
}

// TooStale reports whether the entry is too old to serve even degraded.
func (c CachedCount) TooStale(now time.Time) bool {
	return now.Sub(c.CachedAt) > staleCacheMaxAge
}

// CountCache is the in-memory edge cache fronting the durable store. It is a
// best-effort mirror, never the source of truth. Entries are returned
// regardless of age; staleness classification is the caller's concern, since
// an expired entry still serves as a degraded fallback when the store is
// down.
type CountCache struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]CachedCount
}

// NewCountCache creates an empty edge cache.
func NewCountCache() *CountCache {
	return &CountCache{
		now:     time.Now,
		entries: make(map[string]CachedCount),
	}
}

// SetClock replaces the cache's time source, for tests.
func (c *CountCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Get returns the entry for key, however old it may be.
func (c *CountCache) Get(key string) (CachedCount, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	return entry, ok
}

// Set stores count under key, stamped with the current time.
func (c *CountCache) Set(key string, count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = CachedCount{Count: count, CachedAt: c.now()}
}

// SetAt stores count with an explicit timestamp, for tests that need to
// plant entries of a given age.
func (c *CountCache) SetAt(key string, count int, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = CachedCount{Count: count, CachedAt: at}
}

// cacheKey scopes a handle's counter in the edge cache.
func cacheKey(handle string) string {
	return "views:" + strings.ToLower(handle)
}

// globalCacheKey is the edge-cache key of the global counter.
const globalCacheKey = "views:global"
