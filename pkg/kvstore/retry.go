package kvstore

import (
	"context"
	"errors"
	"strings"
	"time"
)

// RetryOptions bounds the read retry for rate-limit-class failures.
type RetryOptions struct {
	MaxRetries int           // additional attempts after the first
	Delay      time.Duration // backoff base delay
	Multiplier int           // backoff multiplier applied per attempt
}

// DefaultRetryOptions tolerates exactly one retry with a short backoff.
var DefaultRetryOptions = RetryOptions{
	MaxRetries: 1,
	Delay:      50 * time.Millisecond,
	Multiplier: 2,
}

// ReadWithRetry reads key from store, retrying rate-limit-class errors only.
// The delay before attempt n is opts.Delay * opts.Multiplier^n. Any other
// error, or exhaustion of the retry budget, propagates immediately: the
// caller's fallback chain is what absorbs it. ErrNotFound is not an error
// condition worth retrying and passes straight through.
func ReadWithRetry(ctx context.Context, store Store, key string, opts RetryOptions) (string, error) {
	delay := opts.Delay
	var lastErr error

	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		val, err := store.Get(ctx, key)
		if err == nil || errors.Is(err, ErrNotFound) {
			return val, err
		}
		lastErr = err

		if !IsRateLimit(err) || attempt == opts.MaxRetries {
			return "", err
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
			delay *= time.Duration(opts.Multiplier)
		}
	}
	return "", lastErr
}

// IsRateLimit reports whether err looks like provider throttling. The store
// backends surface throttling as plain errors, so classification is by
// message signal.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many")
}
