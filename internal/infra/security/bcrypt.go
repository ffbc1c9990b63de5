package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the 10-round work factor used for every stored hash.
const bcryptCost = 10

// BcryptHasher derives and verifies salted bcrypt password hashes.
// The zero value is ready to use.
type BcryptHasher struct{}

// NewBcryptHasher constructs a hasher with the fixed cost factor.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

// Hash generates a randomly salted bcrypt hash for the provided password.
// Empty passwords are a validation failure upstream; hashing one is a bug.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("bcrypt: password is empty")
	}

	sum, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: hash password: %w", err)
	}

	return string(sum), nil
}

// Verify compares the provided password against a stored bcrypt hash using
// bcrypt's own comparison primitive. A mismatch is not an error.
func (h *BcryptHasher) Verify(password, encoded string) (bool, error) {
	if password == "" || encoded == "" {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	return false, fmt.Errorf("bcrypt: compare password: %w", err)
}
