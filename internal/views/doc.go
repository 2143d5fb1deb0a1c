// Package views implements the profile view counter: cookie- and IP-based
// duplicate suppression, a short-TTL edge cache over the durable store, and
// an orchestrator that composes the two with a multi-tier fallback chain.
//
// The subsystem is built around one contract: a page load must never fail or
// block because of view counting. Every internal step degrades to the next
// fallback tier, and all writes happen after the response value is already
// decided.
package views
