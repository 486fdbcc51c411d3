package vaultcrypto

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
)

// ErrKeyNotSerializable is returned by [Key.MarshalJSON]: vault keys must
// never be serialized, logged, or otherwise leave process memory in a
// readable form.
var ErrKeyNotSerializable = errors.New("vaultcrypto: key must not be serialized")

// Key is a 32-byte vault key held behind a container that forbids copying
// by value-semantics misuse, refuses serialization, and can be explicitly
// zeroized. It is comparable to Rust's zeroize::Zeroizing, adapted to Go: we
// cannot prevent a `Key{}` struct literal copy at compile time, but every
// access in this codebase goes through pointer receivers and the single
// allocation performed by [NewKey], so normal use never copies the backing
// array.
type Key struct {
	b []byte
}

// NewKey wraps raw key bytes. raw must be exactly [KeySize] bytes; NewKey
// takes ownership of the slice and the caller must not retain or reuse it.
func NewKey(raw []byte) (*Key, error) {
	if len(raw) != KeySize {
		return nil, errors.New("vaultcrypto: key must be 32 bytes")
	}

	return &Key{b: raw}, nil
}

// Bytes returns the underlying key material. The returned slice aliases the
// Key's storage; callers must not retain it past the Key's lifetime.
func (k *Key) Bytes() []byte {
	if k == nil {
		return nil
	}

	return k.b
}

// Zero overwrites the key material with zeros. Safe to call multiple times
// and on a nil receiver.
func (k *Key) Zero() {
	if k == nil {
		return
	}

	for i := range k.b {
		k.b[i] = 0
	}
}

// Equal reports whether two keys hold identical material, compared in
// constant time.
func (k *Key) Equal(other *Key) bool {
	if k == nil || other == nil {
		return false
	}

	return subtle.ConstantTimeCompare(k.b, other.b) == 1
}

// MarshalJSON always fails: a vault key must never be serialized.
func (k *Key) MarshalJSON() ([]byte, error) {
	return nil, ErrKeyNotSerializable
}

var _ json.Marshaler = (*Key)(nil)

// ConstantTimeEqual compares two byte slices in constant time.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	return subtle.ConstantTimeCompare(a, b) == 1
}

// Zero overwrites buf with zeros in place. Used to wipe transient password,
// plaintext, and derived-key buffers before they are freed.
func Zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
