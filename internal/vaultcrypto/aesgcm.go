package vaultcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
)

const (
	// NonceSizeGCM is the fixed GCM nonce length used throughout the vault.
	NonceSizeGCM = 12

	// TagSizeGCM is the fixed GCM authentication tag length appended to
	// every ciphertext.
	TagSizeGCM = 16

	// SaltSize is the fixed salt length for the password KDF profile.
	SaltSize = 16

	// KeySize is the size, in bytes, of a vault key.
	KeySize = 32
)

var (
	// ErrNilAESGCM is returned when a nil cipher is used.
	ErrNilAESGCM = errors.New("vaultcrypto: AESGCM is nil")

	// ErrTagMismatch is the single failure mode exposed for any decryption
	// failure: wrong key and tampered ciphertext are deliberately
	// indistinguishable (spec §4.1).
	ErrTagMismatch = errors.New("vaultcrypto: authentication tag mismatch")

	// ErrBadNonceSize is returned when a nonce is not exactly NonceSizeGCM
	// bytes.
	ErrBadNonceSize = errors.New("vaultcrypto: nonce must be 12 bytes")
)

// AESGCM wraps a [cipher.AEAD] using AES-256 in GCM mode.
type AESGCM struct {
	aead cipher.AEAD
}

// NewAESGCM constructs an AES-GCM cipher from a 32-byte key.
func NewAESGCM(key []byte) (*AESGCM, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &AESGCM{aead: aead}, nil
}

// Encrypt draws a fresh random nonce and seals plaintext under it, returning
// the nonce and ciphertext||tag separately per the envelope's on-disk shape.
func Encrypt(key, plaintext []byte) (nonce, ciphertext []byte, _ error) {
	g, err := NewAESGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce, err = RandBytes(NonceSizeGCM)
	if err != nil {
		return nil, nil, err
	}

	ct, err := g.Seal(nonce, plaintext)
	if err != nil {
		return nil, nil, err
	}

	return nonce, ct, nil
}

// Decrypt opens ciphertext (which must include the trailing 16-byte tag)
// under key and nonce. Any failure — wrong key or tampered ciphertext —
// surfaces as [ErrTagMismatch].
func Decrypt(key, nonce, ciphertext []byte) ([]byte, error) {
	if len(nonce) != NonceSizeGCM {
		return nil, ErrBadNonceSize
	}

	g, err := NewAESGCM(key)
	if err != nil {
		return nil, err
	}

	pt, err := g.Open(nonce, ciphertext)
	if err != nil {
		return nil, ErrTagMismatch
	}

	return pt, nil
}

// Seal encrypts plaintext using the given nonce. The caller is responsible
// for nonce uniqueness; prefer the package-level [Encrypt] for fresh nonces.
func (g *AESGCM) Seal(nonce, plaintext []byte) ([]byte, error) {
	if g == nil {
		return nil, ErrNilAESGCM
	}

	return g.aead.Seal(nil, nonce, plaintext, nil), nil
}

// Open decrypts ciphertext (including its trailing tag) using nonce.
func (g *AESGCM) Open(nonce, ciphertext []byte) ([]byte, error) {
	if g == nil {
		return nil, ErrNilAESGCM
	}

	return g.aead.Open(nil, nonce, ciphertext, nil)
}
