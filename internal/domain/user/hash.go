package user

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword computes the legacy password digest shared with game
// clients. Registration bots submit this digest precomputed, so login
// must be able to recompute it from the raw password; a salted KDF
// cannot serve this contract.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword checks a raw password against a stored digest
func VerifyPassword(password, storedHash string) bool {
	computed := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
