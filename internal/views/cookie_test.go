package views

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func TestSeenRoundTrip(t *testing.T) {
	seen := []SeenProfile{
		{Handle: "octocat", Timestamp: testNow.Unix()},
		{Handle: "torvalds", Timestamp: testNow.Add(-time.Hour).Unix()},
	}
	decoded := decodeSeen(encodeSeen(seen))
	if len(decoded) != 2 {
		t.Fatalf("got %d entries, want 2", len(decoded))
	}
	for i := range seen {
		if decoded[i] != seen[i] {
			t.Errorf("entry %d = %+v, want %+v", i, decoded[i], seen[i])
		}
	}
}

func TestDecodeSeenMalformed(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"not base64", "!!!not-base64!!!"},
		{"garbage payload", base64.StdEncoding.EncodeToString([]byte("no delimiters here"))},
		{"missing timestamp", base64.StdEncoding.EncodeToString([]byte("octocat"))},
		{"non-numeric timestamp", base64.StdEncoding.EncodeToString([]byte("octocat:soon"))},
		{"empty handle", base64.StdEncoding.EncodeToString([]byte(":12345"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if seen := decodeSeen(tt.value); len(seen) != 0 {
				t.Errorf("decodeSeen(%q) = %+v, want empty", tt.value, seen)
			}
		})
	}
}

func TestDecodeSeenSkipsBadTokensOnly(t *testing.T) {
	raw := "octocat:100,broken,torvalds:200"
	seen := decodeSeen(base64.StdEncoding.EncodeToString([]byte(raw)))
	if len(seen) != 2 {
		t.Fatalf("got %d entries, want 2 (bad token skipped)", len(seen))
	}
	if seen[0].Handle != "octocat" || seen[1].Handle != "torvalds" {
		t.Errorf("entries = %+v", seen)
	}
}

func TestShouldCountWindow(t *testing.T) {
	tests := []struct {
		name string
		age  time.Duration
		want bool
	}{
		{"just seen", time.Minute, false},
		{"just under a day", 24*time.Hour - time.Minute, false},
		{"exactly a day", 24 * time.Hour, true},
		{"over a day", 24*time.Hour + time.Minute, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := []SeenProfile{{Handle: "octocat", Timestamp: testNow.Add(-tt.age).Unix()}}
			if got := shouldCount(seen, "octocat", testNow); got != tt.want {
				t.Errorf("shouldCount = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldCountUnknownHandle(t *testing.T) {
	seen := []SeenProfile{{Handle: "torvalds", Timestamp: testNow.Unix()}}
	if !shouldCount(seen, "octocat", testNow) {
		t.Error("a handle absent from the list must count")
	}
	if !shouldCount(nil, "octocat", testNow) {
		t.Error("an empty list must count")
	}
}

func TestShouldCountCaseInsensitive(t *testing.T) {
	seen := []SeenProfile{{Handle: "octocat", Timestamp: testNow.Unix()}}
	if shouldCount(seen, "OctoCat", testNow) {
		t.Error("handle matching must ignore case")
	}
}

func TestUpdateSeenPrependsAndDedupes(t *testing.T) {
	seen := []SeenProfile{
		{Handle: "octocat", Timestamp: testNow.Add(-2 * time.Hour).Unix()},
		{Handle: "torvalds", Timestamp: testNow.Add(-time.Hour).Unix()},
	}
	updated := updateSeen(seen, "OctoCat", testNow)
	if len(updated) != 2 {
		t.Fatalf("got %d entries, want 2", len(updated))
	}
	if updated[0].Handle != "octocat" || updated[0].Timestamp != testNow.Unix() {
		t.Errorf("first entry = %+v, want fresh octocat", updated[0])
	}
	if updated[1].Handle != "torvalds" {
		t.Errorf("second entry = %+v, want torvalds preserved", updated[1])
	}
}

func TestUpdateSeenDropsExpired(t *testing.T) {
	seen := []SeenProfile{
		{Handle: "ancient", Timestamp: testNow.Add(-25 * time.Hour).Unix()},
		{Handle: "recent", Timestamp: testNow.Add(-time.Hour).Unix()},
	}
	updated := updateSeen(seen, "octocat", testNow)
	for _, s := range updated {
		if s.Handle == "ancient" {
			t.Error("expired entry survived the update")
		}
	}
	if len(updated) != 2 {
		t.Errorf("got %d entries, want 2", len(updated))
	}
}

func TestUpdateSeenCapsLength(t *testing.T) {
	var seen []SeenProfile
	for i := 0; i < 60; i++ {
		seen = append(seen, SeenProfile{
			Handle:    fmt.Sprintf("user%d", i),
			Timestamp: testNow.Add(-time.Minute).Unix(),
		})
	}
	updated := updateSeen(seen, "octocat", testNow)
	if len(updated) != maxTrackedProfiles {
		t.Fatalf("got %d entries, want %d", len(updated), maxTrackedProfiles)
	}
	if updated[0].Handle != "octocat" {
		t.Error("newest entry must survive the cap")
	}
}

func TestDedupCookieAttributes(t *testing.T) {
	cookie := dedupCookie([]SeenProfile{{Handle: "octocat", Timestamp: testNow.Unix()}})
	if cookie.Name != CookieName {
		t.Errorf("Name = %q, want %q", cookie.Name, CookieName)
	}
	if cookie.Path != "/" || !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie attributes wrong: %+v", cookie)
	}
	if cookie.MaxAge != 86400 {
		t.Errorf("MaxAge = %d, want 86400", cookie.MaxAge)
	}
	if strings.ContainsAny(cookie.Value, ":,") {
		t.Errorf("value %q is not encoded", cookie.Value)
	}
}
