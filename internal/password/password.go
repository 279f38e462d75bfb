// Package password implements credential verification against the stored
// salted hash format: hex(SHA256(password || salt || secret)).
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Hasher hashes and verifies passwords with a server-side secret appended
// to the salted input.
type Hasher struct {
	secret string
}

// NewHasher creates a Hasher with the given server secret.
func NewHasher(secret string) *Hasher {
	return &Hasher{secret: secret}
}

// Hash returns the hex-encoded SHA256 of password || salt || secret.
func (h *Hasher) Hash(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt + h.secret))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether candidate hashes to storedHash under salt.
// Comparison is constant-time; any mismatch or malformed input yields
// false, never an error.
func (h *Hasher) Verify(storedHash, salt, candidate string) bool {
	computed := h.Hash(candidate, salt)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(computed)) == 1
}

// NewSalt returns a fresh random hex salt for password changes.
func NewSalt() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
