package github

import (
	"strings"
	"sync"
	"time"
)

// DefaultProfileTTL is how long a fetched profile stays fresh.
const DefaultProfileTTL = 5 * time.Minute

// ProfileCache memoizes fetched profiles per handle with a short TTL.
//
// Entries expire lazily on read; there is no background eviction. The cache
// is safe for concurrent use. Construct one per process and inject it where
// needed so tests can control time and isolate instances.
type ProfileCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]profileEntry
}

type profileEntry struct {
	profile  *Profile
	storedAt time.Time
}

// NewProfileCache creates a cache with the given TTL. A TTL of 0 disables
// expiry.
func NewProfileCache(ttl time.Duration) *ProfileCache {
	return &ProfileCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]profileEntry),
	}
}

// Get returns the cached profile for handle, or nil when absent or expired.
// Expired entries are removed on the way out.
func (c *ProfileCache) Get(handle string) *Profile {
	key := strings.ToLower(CleanHandle(handle))

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil
	}
	if c.ttl > 0 && c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil
	}
	return entry.profile
}

// Set stores a profile under its handle.
func (c *ProfileCache) Set(handle string, profile *Profile) {
	key := strings.ToLower(CleanHandle(handle))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = profileEntry{profile: profile, storedAt: c.now()}
}

// Reset drops all entries.
func (c *ProfileCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]profileEntry)
}
