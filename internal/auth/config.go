package auth

import (
	"crypto/rand"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultTokenTTL = 20 * time.Minute

	secretKeyLength = 64
)

type Config struct {
	// SecretKey signs bearer tokens; immutable for the process lifetime.
	SecretKey []byte
	TokenTTL  time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost when zero.
	BcryptCost int
}

func (c Config) bcryptCost() int {
	if c.BcryptCost == 0 {
		return bcrypt.DefaultCost
	}

	return c.BcryptCost
}

// NewRandomSecret generates a fresh signing key. Tokens signed with it do not
// survive a process restart.
func NewRandomSecret() ([]byte, error) {
	key := make([]byte, secretKeyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate secret key: %w", err)
	}

	return key, nil
}
