package views

import (
	"testing"
	"time"
)

func TestCountCacheFreshness(t *testing.T) {
	tests := []struct {
		name     string
		age      time.Duration
		expired  bool
		tooStale bool
	}{
		{"just cached", time.Minute, false, false},
		{"nine minutes", 9 * time.Minute, false, false},
		{"eleven minutes", 11 * time.Minute, true, false},
		{"forty-five minutes", 45 * time.Minute, true, false},
		{"ninety minutes", 90 * time.Minute, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := CachedCount{Count: 5, CachedAt: testNow.Add(-tt.age)}
			if got := entry.Expired(testNow); got != tt.expired {
				t.Errorf("Expired = %v, want %v", got, tt.expired)
			}
			if got := entry.TooStale(testNow); got != tt.tooStale {
				t.Errorf("TooStale = %v, want %v", got, tt.tooStale)
			}
		})
	}
}

func TestCountCacheReturnsOldEntries(t *testing.T) {
	cache := NewCountCache()
	cache.SetAt("views:octocat", 12, testNow.Add(-2*time.Hour))

	entry, ok := cache.Get("views:octocat")
	if !ok {
		t.Fatal("old entries must stay retrievable; staleness is the caller's call")
	}
	if entry.Count != 12 {
		t.Errorf("Count = %d, want 12", entry.Count)
	}
}

func TestCountCacheSetStamps(t *testing.T) {
	cache := NewCountCache()
	cache.SetClock(func() time.Time { return testNow })

	cache.Set("views:octocat", 3)
	entry, ok := cache.Get("views:octocat")
	if !ok || !entry.CachedAt.Equal(testNow) {
		t.Errorf("entry = %+v, ok = %v; want stamp %v", entry, ok, testNow)
	}
}

func TestCacheKeyNormalizesHandle(t *testing.T) {
	if cacheKey("OctoCat") != cacheKey("octocat") {
		t.Error("cache keys must be case-insensitive per handle")
	}
	if cacheKey("octocat") != "views:octocat" {
		t.Errorf("cacheKey = %q", cacheKey("octocat"))
	}
}
