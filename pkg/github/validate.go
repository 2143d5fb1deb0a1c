package github

import (
	"errors"
	"regexp"
	"strings"
)

// GitHub handles: 1-39 alphanumeric or hyphen, not starting with hyphen.
var validHandle = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)

// CleanHandle trims surrounding whitespace and strips a leading "@".
func CleanHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}

// ValidateHandle checks that handle is a plausible GitHub username.
func ValidateHandle(handle string) error {
	if handle == "" {
		return errors.New("handle is required")
	}
	if !validHandle.MatchString(handle) {
		return errors.New("invalid handle: must be 1-39 alphanumeric characters or hyphens, cannot start with hyphen")
	}
	return nil
}
