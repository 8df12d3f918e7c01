// Package config provides environment-driven configuration for the match
// scoring service.
package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt cost bounds. Below 10 is too cheap to protect account passwords;
// above 14 makes register and login latency unacceptable.
const (
	defaultBcryptCost = 12
	minBcryptCost     = 10
	maxBcryptCost     = 14
)

// PasswordConfig carries the credential-hashing parameters for account
// registration and login.
type PasswordConfig struct {
	BcryptCost int
	// Pepper is a deployment-wide secret mixed into every password before
	// hashing. Optional; stolen hashes cannot be cracked offline without it.
	Pepper string
}

// NewPasswordConfig reads BCRYPT_COST (default 12, allowed 10 to 14) and the
// optional PASSWORD_PEPPER.
func NewPasswordConfig() (*PasswordConfig, error) {
	cost, err := envInt("BCRYPT_COST", defaultBcryptCost)
	if err != nil {
		return nil, err
	}
	if cost < minBcryptCost || cost > maxBcryptCost {
		return nil, fmt.Errorf("BCRYPT_COST out of range: %d (must be %d-%d)", cost, minBcryptCost, maxBcryptCost)
	}

	return &PasswordConfig{
		BcryptCost: cost,
		Pepper:     envString("PASSWORD_PEPPER", ""),
	}, nil
}

// peppered appends the pepper when one is configured.
func (c *PasswordConfig) peppered(password string) []byte {
	if c.Pepper != "" {
		return []byte(password + c.Pepper)
	}
	return []byte(password)
}

// HashPassword hashes a password with bcrypt at the configured cost.
func (c *PasswordConfig) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(c.peppered(password), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the password matches the stored hash.
func (c *PasswordConfig) VerifyPassword(password, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), c.peppered(password)) == nil
}
