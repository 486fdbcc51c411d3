package vaultfile

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/latchvault/latch-core/internal/latcherrors"
)

// Version is the only schema version this core understands.
const Version = "1"

// AuthMethod names the auth adapter an envelope was sealed under.
type AuthMethod string

const (
	AuthPassword          AuthMethod = "password"
	AuthOAuth             AuthMethod = "oauth"
	AuthBiometricKeychain AuthMethod = "biometric-keychain"
)

// KDF names the key-derivation tag recorded in an envelope.
type KDF string

const (
	KDFArgon2id KDF = "argon2id"
	KDFNone     KDF = "none"
)

// Data is the nonce/ciphertext pair sealed within an envelope.
type Data struct {
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

// Envelope is the exact on-disk JSON shape of vault.enc (spec §3).
type Envelope struct {
	Version    string     `json:"version"`
	AuthMethod AuthMethod `json:"auth_method"`
	KDF        KDF        `json:"kdf"`
	Salt       string     `json:"salt"`
	Data       Data       `json:"data"`
}

// Encode marshals an Envelope to its canonical JSON form.
func Encode(e Envelope) ([]byte, error) {
	return json.Marshal(e)
}

// Decode parses raw bytes into an Envelope without validating its contents.
// Callers MUST call [Envelope.Validate] before trusting the result.
func Decode(raw []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(raw, &e); err != nil {
		return Envelope{}, fmt.Errorf("%w: malformed envelope json: %v", latcherrors.ErrInvalid, err)
	}

	return e, nil
}

// Validate enforces spec §4.2's envelope-on-read rules: known version,
// exact 12-byte nonce, and a salt whose shape matches auth_method.
func (e Envelope) Validate() error {
	if e.Version != Version {
		return fmt.Errorf("%w: unknown envelope version %q", latcherrors.ErrInvalid, e.Version)
	}

	nonce, err := hex.DecodeString(e.Data.Nonce)
	if err != nil {
		return fmt.Errorf("%w: nonce is not valid hex", latcherrors.ErrInvalid)
	}

	if len(nonce) != 12 {
		return fmt.Errorf("%w: nonce must be 12 bytes, got %d", latcherrors.ErrInvalid, len(nonce))
	}

	if _, err := hex.DecodeString(e.Data.Ciphertext); err != nil {
		return fmt.Errorf("%w: ciphertext is not valid hex", latcherrors.ErrInvalid)
	}

	switch e.AuthMethod {
	case AuthPassword:
		if e.KDF != KDFArgon2id {
			return fmt.Errorf("%w: password envelope must use argon2id", latcherrors.ErrInvalid)
		}

		salt, err := hex.DecodeString(e.Salt)
		if err != nil || len(salt) != 16 {
			return fmt.Errorf("%w: password salt must be 16 bytes", latcherrors.ErrInvalid)
		}
	case AuthOAuth:
		if e.KDF != KDFArgon2id {
			return fmt.Errorf("%w: oauth envelope must use argon2id", latcherrors.ErrInvalid)
		}

		if e.Salt == "" || !utf8.ValidString(e.Salt) {
			return fmt.Errorf("%w: oauth salt must be a non-empty utf-8 subject id", latcherrors.ErrInvalid)
		}
	case AuthBiometricKeychain:
		if e.KDF != KDFNone {
			return fmt.Errorf("%w: biometric envelope must use kdf=none", latcherrors.ErrInvalid)
		}

		if e.Salt != "" {
			return fmt.Errorf("%w: biometric envelope must carry an empty salt", latcherrors.ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown auth_method %q", latcherrors.ErrInvalid, e.AuthMethod)
	}

	return nil
}

// NonceBytes decodes Data.Nonce. Call only after Validate.
func (e Envelope) NonceBytes() []byte {
	b, _ := hex.DecodeString(e.Data.Nonce)
	return b
}

// CiphertextBytes decodes Data.Ciphertext. Call only after Validate.
func (e Envelope) CiphertextBytes() []byte {
	b, _ := hex.DecodeString(e.Data.Ciphertext)
	return b
}

// SaltBytes decodes Salt for auth methods whose salt is binary
// (password). Call only after Validate.
func (e Envelope) SaltBytes() []byte {
	b, _ := hex.DecodeString(e.Salt)
	return b
}
