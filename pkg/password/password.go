// Package password hashes and verifies seller credentials with bcrypt.
//
// Hashes use the modular crypt format ($2a$<cost>$<salt+digest>) so the salt
// and work factor travel with the digest and can be raised without a
// migration: old hashes keep verifying at the cost they were created with.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 12

// bcrypt only looks at the first 72 bytes of input.
const maxSecretBytes = 72

var (
	// ErrMalformedHash means a stored hash could not be parsed. It points at
	// corrupted storage, never at a wrong password.
	ErrMalformedHash = errors.New("password: malformed credential record")
	ErrSecretTooLong = errors.New("password: secret exceeds 72 bytes")
	ErrInvalidCost   = errors.New("password: bcrypt cost out of range")
)

type Hasher struct {
	cost int
}

func NewHasher(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCost, cost)
	}

	return &Hasher{cost: cost}, nil
}

func (h *Hasher) Cost() int {
	return h.cost
}

func (h *Hasher) Hash(secret string) (string, error) {
	if len(secret) > maxSecretBytes {
		return "", ErrSecretTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hash), nil
}

// Verify reports whether secret matches hash. A mismatch is (false, nil);
// an unparseable hash is (false, ErrMalformedHash).
func (h *Hasher) Verify(secret string, hash string) (bool, error) {
	if len(secret) > maxSecretBytes {
		// Hash refuses such secrets, so no stored record can match one.
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}
