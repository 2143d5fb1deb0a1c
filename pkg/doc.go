// Package pkg provides the core libraries for gitfolio portfolio cards.
//
// # Overview
//
// gitfolio turns a public GitHub handle into a normalized portfolio profile
// and tracks deduplicated page views. The pkg directory is organized into
// three main areas:
//
//  1. [github] - Profile fetching and normalization (GraphQL with REST fallback)
//  2. [kvstore] - Durable key-value storage for view counters (Redis or memory)
//  3. [observability] - Optional instrumentation hooks
//
// # Architecture
//
// The typical data flow through gitfolio:
//
//	GitHub GraphQL API --(auth failure)--> GitHub REST API
//	                  \                   /
//	             [github] (fetch + normalize)
//	                         |
//	          canonical Profile + short-TTL cache
//	                         |
//	          HTTP API (internal/server), alongside the
//	          view counter (internal/views) backed by [kvstore]
//
// # Main Packages
//
// [github] - Dual-source profile client. With a token, the GraphQL API
// provides the rich profile (pinned repos, contribution calendar, external
// contributions); without one, or when the token is rejected, the REST API
// provides a reduced profile. Both sources normalize to the same Profile
// type. Includes handle validation, a typed error taxonomy, and a per-handle
// profile cache.
//
// [kvstore] - Minimal Store interface over the durable counter storage with
// Redis and in-memory backends, plus a bounded read retry for
// rate-limit-class failures.
//
// [observability] - Hooks for metrics and tracing without hard backend
// dependencies. Registered by main, consumed by the fetch pipeline, edge
// cache, and store.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...         # All tests
//	go test ./pkg/github/...  # Specific package
//
// [github]: https://pkg.go.dev/github.com/mkarlovic/gitfolio/pkg/github
// [kvstore]: https://pkg.go.dev/github.com/mkarlovic/gitfolio/pkg/kvstore
// [observability]: https://pkg.go.dev/github.com/mkarlovic/gitfolio/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/mkarlovic/gitfolio/pkg/buildinfo
package pkg
