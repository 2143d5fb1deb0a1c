package views

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/mkarlovic/gitfolio/pkg/kvstore"
	"github.com/mkarlovic/gitfolio/pkg/observability"
)

const (
	// GlobalViewKey is the reserved durable-store key of the site-wide counter.
	GlobalViewKey = "global:total_portfolios"

	// ipDedupTTL is how long an IP-hash marker suppresses repeat views.
	ipDedupTTL = time.Hour

	// fallbackViewCount is the ultimate fallback: the current visitor is,
	// by definition, viewing right now.
	fallbackViewCount = 1

	// Mock counts served in local development, when no store is wired.
	devProfileViews = 42
	devGlobalViews  = 1234
)

// Source tags where a returned count came from.
type Source string

const (
	SourceCache    Source = "cache"
	SourceKV       Source = "kv"
	SourceFallback Source = "fallback"
)

// ViewCount is a single counter read with its provenance.
type ViewCount struct {
	Count   int    `json:"count"`
	IsStale bool   `json:"isStale"`
	Source  Source `json:"source"`
}

// ViewResult is the outcome of handling one profile view.
type ViewResult struct {
	Views       int    `json:"views"`
	GlobalViews int    `json:"globalViews"`
	IsStale     bool   `json:"isStale"`
	Source      Source `json:"source"`
}

// Counter orchestrates deduplication, the edge cache, and the durable store.
//
// Its one guarantee: HandleProfileView never fails and never blocks on
// writes. Reads degrade through fresh cache, store, stale cache, and a
// hardcoded constant; writes are scheduled after the response value is
// decided and their failures are only logged.
type Counter struct {
	store  kvstore.Store // nil means local/offline mode
	cache  *CountCache
	hasher *IPHasher
	log    *log.Logger
	retry  kvstore.RetryOptions

	// background schedules work decoupled from the response path. The
	// default is a fire-and-forget goroutine; hosts with a run-after-
	// response hook can supply it here.
	background func(func())

	now func() time.Time
}

// NewCounter wires the view counter. Pass a nil store for local development:
// the counter then serves fixed mock values and touches nothing else. The
// hasher may be nil only when the store is nil, since the IP-dedup layer is
// unreachable without a store.
func NewCounter(store kvstore.Store, cache *CountCache, hasher *IPHasher, logger *log.Logger) *Counter {
	if cache == nil {
		cache = NewCountCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Counter{
		store:      store,
		cache:      cache,
		hasher:     hasher,
		log:        logger,
		retry:      kvstore.DefaultRetryOptions,
		background: func(fn func()) { go fn() },
		now:        time.Now,
	}
}

// SetBackground replaces the deferred-work scheduler. Tests use a
// synchronous scheduler to observe writes deterministically.
func (c *Counter) SetBackground(schedule func(func())) {
	c.background = schedule
}

// SetClock replaces the counter's time source, for tests.
func (c *Counter) SetClock(now func() time.Time) {
	c.now = now
}

// HandleProfileView processes one view of handle: decides countability via
// the cookie and IP layers, reads both counters through the fallback chain,
// and schedules the increment write-back. It never returns an error; the
// worst possible outcome is the hardcoded fallback result.
func (c *Counter) HandleProfileView(ctx context.Context, handle string, jar CookieJar, ip string) (result ViewResult) {
	if c.store == nil {
		return ViewResult{Views: devProfileViews, GlobalViews: devGlobalViews, Source: SourceFallback}
	}

	// Ultimate safety net. Undercounting a view is acceptable; breaking
	// the page is not.
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("view handling panicked", "handle", handle, "panic", r)
			result = ViewResult{Views: fallbackViewCount, GlobalViews: fallbackViewCount, Source: SourceFallback}
		}
	}()

	countable := c.shouldCountView(ctx, handle, jar, ip)

	var profileViews, globalViews ViewCount
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profileViews = c.getCount(gctx, strings.ToLower(handle), cacheKey(handle))
		return nil
	})
	g.Go(func() error {
		globalViews = c.getCount(gctx, GlobalViewKey, globalCacheKey)
		return nil
	})
	_ = g.Wait()

	displayViews := profileViews.Count
	displayGlobal := globalViews.Count

	if countable {
		// The response reflects the increment immediately; the durable
		// write happens after the fact and may lose the race with other
		// viewers. That drift is accepted.
		displayViews++
		displayGlobal++

		wctx := context.WithoutCancel(ctx)
		pv, gv := displayViews, displayGlobal
		c.background(func() { c.writeCounts(wctx, handle, pv, gv) })
	}

	return ViewResult{
		Views:       displayViews,
		GlobalViews: displayGlobal,
		IsStale:     profileViews.IsStale || globalViews.IsStale,
		Source:      profileViews.Source,
	}
}

// GlobalViews reads the site-wide counter without counting anything.
func (c *Counter) GlobalViews(ctx context.Context) ViewCount {
	if c.store == nil {
		return ViewCount{Count: devGlobalViews, Source: SourceFallback}
	}
	return c.getCount(ctx, GlobalViewKey, globalCacheKey)
}

// shouldCountView runs both dedup layers. Any unexpected failure in either
// fails open: the view counts.
func (c *Counter) shouldCountView(ctx context.Context, handle string, jar CookieJar, ip string) bool {
	if !c.cookieAllows(jar, handle) {
		return false
	}
	return c.ipAllows(ctx, handle, ip)
}

// cookieAllows checks and updates the seen-list cookie. A failed cookie
// write still counts the view this once, at the cost of losing dedup for
// the next visit.
func (c *Counter) cookieAllows(jar CookieJar, handle string) bool {
	if jar == nil {
		return true
	}

	seen := decodeSeen(jar.Get(CookieName))
	if !shouldCount(seen, handle, c.now()) {
		return false
	}

	updated := updateSeen(seen, handle, c.now())
	if err := jar.Set(dedupCookie(updated)); err != nil {
		c.log.Error("failed to set dedup cookie", "handle", handle, "err", err)
	}
	return true
}

// ipAllows consults the durable-store IP marker. It only runs after the
// cookie layer said yes; it guards against cleared cookies and incognito
// visits. Store failures fail open.
func (c *Counter) ipAllows(ctx context.Context, handle, ip string) bool {
	if c.hasher == nil || ip == "" {
		return true
	}

	key := "dedup:" + c.hasher.Hash(ip) + ":" + strings.ToLower(handle)
	_, err := c.store.Get(ctx, key)
	if err == nil {
		return false // this IP already viewed this handle within the window
	}
	if !errors.Is(err, kvstore.ErrNotFound) {
		c.log.Error("ip dedup check failed", "err", err)
		return true
	}

	wctx := context.WithoutCancel(ctx)
	c.background(func() {
		if err := c.store.SetTTL(wctx, key, "1", ipDedupTTL); err != nil {
			c.log.Error("failed to mark ip as seen", "err", err)
		}
	})
	return true
}

// getCount reads one counter through the fallback chain:
// fresh edge cache, durable store with bounded retry, stale-but-usable
// cache, and finally the hardcoded constant.
func (c *Counter) getCount(ctx context.Context, key, ck string) ViewCount {
	if entry, ok := c.cache.Get(ck); ok && !entry.Expired(c.now()) {
		observability.Cache().OnCacheHit(ctx, ck)
		return ViewCount{Count: entry.Count, Source: SourceCache}
	}
	observability.Cache().OnCacheMiss(ctx, ck)

	val, err := kvstore.ReadWithRetry(ctx, c.store, key, c.retry)
	if err == nil || errors.Is(err, kvstore.ErrNotFound) {
		count := 0
		if err == nil {
			count, _ = strconv.Atoi(val)
		}

		// Backfill the cache off the response path.
		wctx := context.WithoutCancel(ctx)
		c.background(func() {
			c.cache.Set(ck, count)
			observability.Cache().OnCacheSet(wctx, ck)
		})
		return ViewCount{Count: count, Source: SourceKV}
	}
	c.log.Error("kv read failed", "key", key, "err", err)

	if entry, ok := c.cache.Get(ck); ok && !entry.TooStale(c.now()) {
		return ViewCount{Count: entry.Count, IsStale: true, Source: SourceCache}
	}

	return ViewCount{Count: fallbackViewCount, Source: SourceFallback}
}

// writeCounts persists both counters and refreshes the edge cache. Failures
// are logged and forgotten; the page already loaded.
func (c *Counter) writeCounts(ctx context.Context, handle string, profileCount, globalCount int) {
	if err := c.store.Set(ctx, strings.ToLower(handle), strconv.Itoa(profileCount)); err != nil {
		c.log.Error("failed to write profile views", "handle", handle, "err", err)
		return
	}
	if err := c.store.Set(ctx, GlobalViewKey, strconv.Itoa(globalCount)); err != nil {
		c.log.Error("failed to write global views", "err", err)
		return
	}

	c.cache.Set(cacheKey(handle), profileCount)
	c.cache.Set(globalCacheKey, globalCount)
}
