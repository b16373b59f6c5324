package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost keeps hashing in the tens-of-milliseconds range.
const bcryptCost = 12

// HashPassword returns a salted one-way bcrypt digest of the plaintext.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// CheckPassword reports whether plaintext matches the stored digest. A wrong
// password is a false return, never an error; malformed digests also report
// false.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
