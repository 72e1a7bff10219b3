// Package password wraps bcrypt for credential hashing.
//
// Digests are self-describing: the algorithm identifier, cost factor and
// salt are embedded in the digest itself, so Verify needs no external state.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmptyPassword = errors.New("password must not be empty")

// Hash produces a salted one-way digest of plaintext. A fresh salt is
// generated on every call, so hashing the same plaintext twice yields
// two different digests.
func Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A malformed digest
// is simply a non-match, never an error.
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
