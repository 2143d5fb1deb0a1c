// Package kvstore abstracts the durable key-value store holding view
// counters and IP-dedup markers.
//
// Two backends are provided:
//   - redis: Redis-backed storage for production deployments
//   - memory: in-memory storage for development and testing
//
// The store is eventually consistent from the caller's point of view: reads
// and writes are blind (no compare-and-swap), and concurrent increments are
// allowed to race. [ReadWithRetry] adds a bounded retry for rate-limit-class
// read failures.
package kvstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key does not exist.
var ErrNotFound = errors.New("key not found")

// Store is a minimal key-value interface over the durable counter storage.
type Store interface {
	// Get returns the value for key, or ErrNotFound when absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key with no expiry.
	Set(ctx context.Context, key, value string) error

	// SetTTL stores value under key, expiring after ttl.
	SetTTL(ctx context.Context, key, value string, ttl time.Duration) error

	// Close releases backend resources.
	Close() error
}
