package vaultcrypto

import (
	"crypto/rand"
	"io"
)

// RandBytes returns n cryptographically secure random bytes from the OS
// CSPRNG.
func RandBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}

	return b, nil
}
