// Package observability provides hooks for metrics and tracing.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about profile fetches, edge-cache operations,
// and durable-store access.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, which avoids import cycles
// and keeps the core free of observability-framework dependencies.
//
// # Usage
//
//	func main() {
//	    observability.SetFetchHooks(&myFetchHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// FetchHooks receives events from the profile fetch pipeline.
// The source label is "graphql" or "rest".
type FetchHooks interface {
	// OnFetchStart records the start of an upstream profile fetch.
	OnFetchStart(ctx context.Context, handle, source string)

	// OnFetchComplete records the outcome of a profile fetch, including
	// fallback attempts. err is nil on success.
	OnFetchComplete(ctx context.Context, handle, source string, duration time.Duration, err error)
}

// CacheHooks receives events from edge-cache operations.
type CacheHooks interface {
	// OnCacheHit records a fresh cache hit.
	OnCacheHit(ctx context.Context, key string)

	// OnCacheMiss records a cache miss or expired entry.
	OnCacheMiss(ctx context.Context, key string)

	// OnCacheSet records a cache write or backfill.
	OnCacheSet(ctx context.Context, key string)
}

// StoreHooks receives events from durable key-value store operations.
type StoreHooks interface {
	// OnStoreRead records a store read and its outcome.
	OnStoreRead(ctx context.Context, key string, duration time.Duration, err error)

	// OnStoreWrite records a store write and its outcome.
	OnStoreWrite(ctx context.Context, key string, err error)
}

// NoopFetchHooks is a no-op implementation of FetchHooks.
type NoopFetchHooks struct{}

func (NoopFetchHooks) OnFetchStart(context.Context, string, string)                          {}
func (NoopFetchHooks) OnFetchComplete(context.Context, string, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)  {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string) {}
func (NoopCacheHooks) OnCacheSet(context.Context, string)  {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreRead(context.Context, string, time.Duration, error) {}
func (NoopStoreHooks) OnStoreWrite(context.Context, string, error)               {}

var (
	fetchHooks FetchHooks = NoopFetchHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	storeHooks StoreHooks = NoopStoreHooks{}
	hooksMu    sync.RWMutex
)

// SetFetchHooks registers custom fetch hooks.
// This should be called once at application startup.
func SetFetchHooks(h FetchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		fetchHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Fetch returns the registered fetch hooks.
func Fetch() FetchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return fetchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	fetchHooks = NoopFetchHooks{}
	cacheHooks = NoopCacheHooks{}
	storeHooks = NoopStoreHooks{}
}
