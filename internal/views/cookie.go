package views

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// CookieName is the dedup cookie set on profile pages.
	CookieName = "pv_seen"

	// dedupWindow is the minimum time before a repeat view counts again.
	dedupWindow = 24 * time.Hour

	// maxTrackedProfiles caps the seen-list length, most recent first.
	maxTrackedProfiles = 50
)

// SeenProfile is one dedup cookie entry: a lowercased handle and the epoch
// second it was last viewed.
type SeenProfile struct {
	Handle    string
	Timestamp int64
}

// CookieJar abstracts cookie access so the orchestrator stays independent of
// http.Request plumbing. Set errors are surfaced so the caller can log them;
// a failed write only costs dedup on the next visit.
type CookieJar interface {
	Get(name string) string
	Set(cookie *http.Cookie) error
}

// decodeSeen parses the cookie value: base64 of comma-joined "handle:epoch"
// tokens. Malformed input of any kind decodes to an empty list rather than
// failing; a broken cookie just loses its dedup history.
func decodeSeen(value string) []SeenProfile {
	if value == "" {
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil
	}

	var seen []SeenProfile
	for _, token := range strings.Split(string(raw), ",") {
		if token == "" {
			continue
		}
		handle, tsStr, ok := strings.Cut(token, ":")
		if !ok || handle == "" {
			continue
		}
		ts, err := strconv.ParseInt(tsStr, 10, 64)
		if err != nil {
			continue
		}
		seen = append(seen, SeenProfile{Handle: strings.ToLower(handle), Timestamp: ts})
	}
	return seen
}

// encodeSeen is the inverse of decodeSeen.
func encodeSeen(seen []SeenProfile) string {
	tokens := make([]string, 0, len(seen))
	for _, s := range seen {
		tokens = append(tokens, fmt.Sprintf("%s:%d", s.Handle, s.Timestamp))
	}
	return base64.StdEncoding.EncodeToString([]byte(strings.Join(tokens, ",")))
}

// shouldCount reports whether a view of handle is countable: the handle is
// absent from the list, or its recorded view is at least a dedup window old.
func shouldCount(seen []SeenProfile, handle string, now time.Time) bool {
	normalized := strings.ToLower(handle)
	for _, s := range seen {
		if s.Handle == normalized {
			return now.Unix()-s.Timestamp >= int64(dedupWindow/time.Second)
		}
	}
	return true
}

// updateSeen records a fresh view of handle: the old entry is removed, the
// new one prepended, entries older than the dedup window dropped, and the
// list capped to the most recent maxTrackedProfiles.
func updateSeen(seen []SeenProfile, handle string, now time.Time) []SeenProfile {
	normalized := strings.ToLower(handle)
	nowSec := now.Unix()
	windowSec := int64(dedupWindow / time.Second)

	updated := make([]SeenProfile, 0, len(seen)+1)
	updated = append(updated, SeenProfile{Handle: normalized, Timestamp: nowSec})
	for _, s := range seen {
		if s.Handle == normalized {
			continue
		}
		if nowSec-s.Timestamp >= windowSec {
			continue
		}
		updated = append(updated, s)
	}

	if len(updated) > maxTrackedProfiles {
		updated = updated[:maxTrackedProfiles]
	}
	return updated
}

// dedupCookie builds the HTTP-only, lax-same-site cookie carrying the seen
// list, scoped to the whole site with a dedup-window lifetime.
func dedupCookie(seen []SeenProfile) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    encodeSeen(seen),
		Path:     "/",
		MaxAge:   int(dedupWindow / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
