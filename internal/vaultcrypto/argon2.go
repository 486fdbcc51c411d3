package vaultcrypto

import "golang.org/x/crypto/argon2"

// Argon2Params fixes the tuning of one Argon2id profile. Spec §3 fixes these
// per auth method; they are never user-configurable.
type Argon2Params struct {
	Memory      uint32 // KiB
	Time        uint32 // iterations
	Parallelism uint8
	KeyLen      uint32 // derived key length, bytes
}

var (
	// PasswordKDFParams is the profile used to derive the vault key from a
	// user password: m=65536 KiB, t=3, p=4, 32-byte output, 16-byte salt.
	PasswordKDFParams = Argon2Params{Memory: 65536, Time: 3, Parallelism: 4, KeyLen: KeySize}

	// OAuthKDFParams is the profile used to derive the vault key from the
	// per-deployment pepper, salted by the verified OAuth subject id:
	// m=32768 KiB, t=2, p=2, 32-byte output.
	OAuthKDFParams = Argon2Params{Memory: 32768, Time: 2, Parallelism: 2, KeyLen: KeySize}
)

// DeriveKey runs Argon2id(password, salt) under the given profile.
func DeriveKey(password, salt []byte, p Argon2Params) []byte {
	return argon2.IDKey(password, salt, p.Time, p.Memory, p.Parallelism, p.KeyLen)
}
