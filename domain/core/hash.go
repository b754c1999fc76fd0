package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash represents a deterministic content fingerprint
type Hash string

// ComputeHash produces a deterministic SHA-256 fingerprint over the given parts.
// Parts are joined with a separator so ("ab","c") and ("a","bc") differ.
func ComputeHash(parts ...string) Hash {
	h := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return Hash(hex.EncodeToString(h[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}
