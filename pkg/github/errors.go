package github

import "fmt"

// ErrorKind classifies profile fetch failures.
type ErrorKind string

// Fetch error kinds. Only KindUnauthorized triggers the REST fallback; the
// other kinds are authoritative and surface immediately.
const (
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindRateLimit    ErrorKind = "RATE_LIMIT"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindUnknown      ErrorKind = "UNKNOWN"
)

// FetchError is the typed failure returned by [Client.FetchProfile].
type FetchError struct {
	Kind    ErrorKind
	Handle  string
	Message string
	Status  int // upstream HTTP status when known, 0 otherwise
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// UserMessage returns the text shown to a visitor when the fetch failed.
// Not-found and rate-limit failures get bespoke copy; everything else falls
// back to the upstream message.
func (e *FetchError) UserMessage() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("User %q not found on GitHub", e.Handle)
	case KindRateLimit:
		return "GitHub API rate limit exceeded. Please try again later."
	default:
		if e.Message != "" {
			return e.Message
		}
		return "Failed to fetch GitHub profile"
	}
}

func notFoundError(handle string) *FetchError {
	return &FetchError{Kind: KindNotFound, Handle: handle, Message: fmt.Sprintf("user %q not found", handle)}
}

func rateLimitError(handle string, status int) *FetchError {
	return &FetchError{Kind: KindRateLimit, Handle: handle, Message: "GitHub API rate limit exceeded", Status: status}
}

func unauthorizedError(handle, msg string, status int) *FetchError {
	return &FetchError{Kind: KindUnauthorized, Handle: handle, Message: msg, Status: status}
}

func unknownError(handle, msg string, status int) *FetchError {
	return &FetchError{Kind: KindUnknown, Handle: handle, Message: msg, Status: status}
}
