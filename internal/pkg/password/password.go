// Package password handles credential hashing for employee accounts and
// digest hashing for refresh tokens kept at rest.
package password

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor applied to every stored credential.
const DefaultCost = 12

// Hash derives a bcrypt hash from a plaintext password.
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether the plaintext password matches the stored hash.
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// HashToken returns the hex SHA-256 digest of a refresh token. Only the
// digest is persisted, so a leaked sessions table cannot replay tokens.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// ValidatePassword enforces the minimum password length for signup and reset.
func ValidatePassword(password string) bool {
	return len(password) >= 8
}
