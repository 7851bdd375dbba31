package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher produces and verifies salted one-way password digests.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(config Config) *PasswordHasher {
	return &PasswordHasher{
		cost: config.bcryptCost(),
	}
}

// Hash digests the plaintext with a fresh random salt, so hashing the same
// password twice yields different digests.
func (h *PasswordHasher) Hash(plaintext string) ([]byte, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return digest, nil
}

// Verify reports whether the plaintext matches the digest. Any internal
// failure reads as a mismatch so callers cannot tell the cases apart.
func (h *PasswordHasher) Verify(plaintext string, digest []byte) bool {
	return bcrypt.CompareHashAndPassword(digest, []byte(plaintext)) == nil
}
