package kvstore

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for development and testing.
// Entries with a TTL expire lazily on read. The zero value is not usable;
// construct with NewMemoryStore.
type MemoryStore struct {
	mu      sync.RWMutex
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

// SetClock replaces the store's time source. Useful in tests to control
// TTL expiry.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Get returns the value for key, or ErrNotFound when absent or expired.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		return "", ErrNotFound
	}
	return entry.value, nil
}

// Set stores value under key with no expiry.
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{value: value}
	return nil
}

// SetTTL stores value under key, expiring after ttl.
func (s *MemoryStore) SetTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{value: value, expiresAt: s.now().Add(ttl)}
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
