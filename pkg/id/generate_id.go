package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns a 32-hex-char public identifier (no separators/prefixes).
// Used for agreement, transaction and notification ids.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewShort returns an 8-hex-char suffix for human-facing references such as
// contract numbers.
func NewShort() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
