package kvstore

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Get(ctx, "views:octocat"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store = %v, want ErrNotFound", err)
	}

	if err := store.Set(ctx, "views:octocat", "7"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, err := store.Get(ctx, "views:octocat")
	if err != nil || val != "7" {
		t.Errorf("Get = %q, %v; want 7, nil", val, err)
	}

	if err := store.Set(ctx, "views:octocat", "8"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if val, _ := store.Get(ctx, "views:octocat"); val != "8" {
		t.Errorf("Get after overwrite = %q, want 8", val)
	}
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.SetClock(func() time.Time { return now })

	if err := store.SetTTL(ctx, "dedup:abc:octocat", "1", time.Hour); err != nil {
		t.Fatalf("SetTTL: %v", err)
	}

	now = now.Add(59 * time.Minute)
	if _, err := store.Get(ctx, "dedup:abc:octocat"); err != nil {
		t.Fatalf("entry expired early: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := store.Get(ctx, "dedup:abc:octocat"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get past TTL = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreSetClearsTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.SetClock(func() time.Time { return now })

	store.SetTTL(ctx, "k", "1", time.Minute)
	store.Set(ctx, "k", "2")

	now = now.Add(time.Hour)
	if val, err := store.Get(ctx, "k"); err != nil || val != "2" {
		t.Errorf("plain Set should remove expiry, got %q, %v", val, err)
	}
}
