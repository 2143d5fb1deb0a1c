// Package github fetches public GitHub profiles and normalizes them into a
// single canonical shape, regardless of which upstream API answered.
//
// Two upstream variants are supported:
//   - The GraphQL API ("rich" path) offers complete nested data: pinned items,
//     contribution history, and per-language byte breakdowns. It requires a
//     personal access token.
//   - The REST API ("simple" path) works without credentials but only exposes a
//     subset of fields; contribution data is unavailable on this path.
//
// [Client.FetchProfile] orchestrates the two: with a token configured it tries
// GraphQL first and falls back to REST only on authorization failures. Every
// other failure (not found, rate limited) is authoritative and returned as-is.
//
// Fetched profiles can be memoized with [ProfileCache] to keep repeated page
// loads from burning API quota.
package github
