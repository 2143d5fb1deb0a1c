package views

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// minSecretLength is the shortest acceptable IP-hashing secret. Anything
// shorter is a deployment misconfiguration, not a runtime condition to
// degrade from.
const minSecretLength = 32

// IPHasher derives privacy-preserving identifiers from client IPs. The raw
// address is never stored; only its keyed hash reaches the durable store.
type IPHasher struct {
	secret []byte
}

// NewIPHasher validates the secret and returns a hasher. A secret shorter
// than 32 characters is rejected outright.
func NewIPHasher(secret string) (*IPHasher, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("ip hash secret is not configured or is too short (min %d chars)", minSecretLength)
	}
	return &IPHasher{secret: []byte(secret)}, nil
}

// Hash returns the hex HMAC-SHA256 of ip, or "" for an empty ip.
func (h *IPHasher) Hash(ip string) string {
	if ip == "" {
		return ""
	}
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(ip))
	return hex.EncodeToString(mac.Sum(nil))
}
