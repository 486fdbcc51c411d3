// Package authmethod implements the three auth variants in spec §4.3:
// password, oauth, and biometric-keychain. Each adapter turns user-
// presented credentials into a 32-byte vault key and the envelope
// metadata (auth_method, kdf, salt) that key was derived under, without
// ever seeing decrypted vault entries.
package authmethod

import (
	"context"
	"fmt"

	"github.com/latchvault/latch-core/internal/keychain"
	"github.com/latchvault/latch-core/internal/latcherrors"
	"github.com/latchvault/latch-core/internal/oauthverifier"
	"github.com/latchvault/latch-core/internal/vaultcrypto"
	"github.com/latchvault/latch-core/internal/vaultfile"
)

// Derived is the result of any setup/unlock/rekey operation: a vault key
// plus the envelope metadata it was derived under.
type Derived struct {
	Key        *vaultcrypto.Key
	AuthMethod vaultfile.AuthMethod
	KDF        vaultfile.KDF
	Salt       string // hex for password, utf-8 subject for oauth, "" for biometric
}

// Credentials carries whichever fields a given auth variant needs. Only
// the fields relevant to the chosen method need be set; unused fields are
// ignored.
type Credentials struct {
	Password string
	IDToken  string
	KeyHex   string // pre-derived key, hex-encoded (init_vault_with_key / unlock_vault_with_key)
}

// Method is one auth variant's setup/unlock/rekey behavior.
type Method interface {
	// Name identifies this method as recorded in the envelope.
	Name() vaultfile.AuthMethod

	// Setup derives a fresh key for a brand-new vault.
	Setup(ctx context.Context, creds Credentials) (Derived, error)

	// Unlock re-derives the key for an existing envelope, using its
	// recorded salt/kdf metadata.
	Unlock(ctx context.Context, env vaultfile.Envelope, creds Credentials) (Derived, error)
}

// Password implements the password auth variant: Argon2id(password,
// random 16-byte salt) on setup; re-derive from the envelope's stored
// salt on unlock.
type Password struct{}

func (Password) Name() vaultfile.AuthMethod { return vaultfile.AuthPassword }

func (Password) Setup(_ context.Context, creds Credentials) (Derived, error) {
	salt, err := vaultcrypto.RandBytes(vaultcrypto.SaltSize)
	if err != nil {
		return Derived{}, fmt.Errorf("%w: generating salt: %v", latcherrors.ErrIO, err)
	}

	return derivePassword(creds.Password, salt)
}

func (Password) Unlock(_ context.Context, env vaultfile.Envelope, creds Credentials) (Derived, error) {
	if env.AuthMethod != vaultfile.AuthPassword {
		return Derived{}, fmt.Errorf("%w: envelope is not a password vault", latcherrors.ErrAuthFailed)
	}

	return derivePassword(creds.Password, env.SaltBytes())
}

func derivePassword(password string, salt []byte) (Derived, error) {
	raw := vaultcrypto.DeriveKey([]byte(password), salt, vaultcrypto.PasswordKDFParams)
	key, err := vaultcrypto.NewKey(raw)
	if err != nil {
		return Derived{}, err
	}

	return Derived{
		Key:        key,
		AuthMethod: vaultfile.AuthPassword,
		KDF:        vaultfile.KDFArgon2id,
		Salt:       hexEncode(salt),
	}, nil
}

// OAuth implements the oauth auth variant: verify the presented ID token
// externally, derive Argon2id(pepper, subject_id).
type OAuth struct {
	Verifier oauthverifier.Verifier
	Pepper   []byte // the LATCH_OAUTH_SECRET application pepper, >= 32 bytes
}

func (OAuth) Name() vaultfile.AuthMethod { return vaultfile.AuthOAuth }

func (o OAuth) Setup(ctx context.Context, creds Credentials) (Derived, error) {
	return o.derive(ctx, creds.IDToken)
}

func (o OAuth) Unlock(ctx context.Context, env vaultfile.Envelope, creds Credentials) (Derived, error) {
	if env.AuthMethod != vaultfile.AuthOAuth {
		return Derived{}, fmt.Errorf("%w: envelope is not an oauth vault", latcherrors.ErrAuthFailed)
	}

	d, err := o.derive(ctx, creds.IDToken)
	if err != nil {
		return Derived{}, err
	}

	if d.Salt != env.Salt {
		// The freshly verified subject no longer matches the envelope's
		// recorded subject: indistinguishable from any other auth failure.
		return Derived{}, fmt.Errorf("%w: oauth subject mismatch", latcherrors.ErrAuthFailed)
	}

	return d, nil
}

func (o OAuth) derive(ctx context.Context, idToken string) (Derived, error) {
	if len(o.Pepper) < 32 {
		return Derived{}, fmt.Errorf("%w: oauth pepper must be at least 32 bytes", latcherrors.ErrInvalid)
	}

	subject, err := o.Verifier.Verify(ctx, idToken)
	if err != nil {
		return Derived{}, fmt.Errorf("%w: %v", latcherrors.ErrAuthFailed, err)
	}

	raw := vaultcrypto.DeriveKey(o.Pepper, []byte(subject), vaultcrypto.OAuthKDFParams)
	key, err := vaultcrypto.NewKey(raw)
	if err != nil {
		return Derived{}, err
	}

	return Derived{
		Key:        key,
		AuthMethod: vaultfile.AuthOAuth,
		KDF:        vaultfile.KDFArgon2id,
		Salt:       subject,
	}, nil
}

// BiometricKeychain implements the biometric-keychain auth variant: on
// setup, a CSPRNG key is generated and stored in the OS keychain; on
// unlock, the key is retrieved from the keychain (which may itself
// trigger an OS biometric prompt, outside this package's concern).
type BiometricKeychain struct {
	Store keychain.Store
}

func (BiometricKeychain) Name() vaultfile.AuthMethod { return vaultfile.AuthBiometricKeychain }

func (b BiometricKeychain) Setup(_ context.Context, _ Credentials) (Derived, error) {
	raw, err := vaultcrypto.RandBytes(vaultcrypto.KeySize)
	if err != nil {
		return Derived{}, fmt.Errorf("%w: generating key: %v", latcherrors.ErrIO, err)
	}

	if err := b.Store.Set(keychain.Service, keychain.Account, raw); err != nil {
		return Derived{}, fmt.Errorf("%w: storing keychain entry: %v", latcherrors.ErrIO, err)
	}

	key, err := vaultcrypto.NewKey(raw)
	if err != nil {
		return Derived{}, err
	}

	return Derived{
		Key:        key,
		AuthMethod: vaultfile.AuthBiometricKeychain,
		KDF:        vaultfile.KDFNone,
		Salt:       "",
	}, nil
}

func (b BiometricKeychain) Unlock(_ context.Context, env vaultfile.Envelope, _ Credentials) (Derived, error) {
	if env.AuthMethod != vaultfile.AuthBiometricKeychain {
		return Derived{}, fmt.Errorf("%w: envelope is not a biometric vault", latcherrors.ErrAuthFailed)
	}

	raw, err := b.Store.Get(keychain.Service, keychain.Account)
	if err != nil {
		return Derived{}, fmt.Errorf("%w: keychain read failed: %v", latcherrors.ErrAuthFailed, err)
	}

	key, err := vaultcrypto.NewKey(raw)
	if err != nil {
		return Derived{}, fmt.Errorf("%w: %v", latcherrors.ErrAuthFailed, err)
	}

	return Derived{
		Key:        key,
		AuthMethod: vaultfile.AuthBiometricKeychain,
		KDF:        vaultfile.KDFNone,
		Salt:       "",
	}, nil
}

// Keyed wraps an externally-supplied raw key (spec's `init_vault_with_key`
// / `unlock_vault_with_key`): the caller already obtained 32 bytes of key
// material — typically via its own OS keychain/biometric integration —
// and hands it to the core directly. The core neither derives nor stores
// this key; it only validates its shape and carries the caller-supplied
// kdf tag into the envelope.
type Keyed struct{}

func (Keyed) Name() vaultfile.AuthMethod { return vaultfile.AuthBiometricKeychain }

func (Keyed) FromHex(keyHex, kdf string) (Derived, error) {
	raw, err := decodeKeyHex(keyHex)
	if err != nil {
		return Derived{}, err
	}

	key, err := vaultcrypto.NewKey(raw)
	if err != nil {
		return Derived{}, err
	}

	k := vaultfile.KDFNone
	if kdf != "" {
		k = vaultfile.KDF(kdf)
	}

	return Derived{
		Key:        key,
		AuthMethod: vaultfile.AuthBiometricKeychain,
		KDF:        k,
		Salt:       "",
	}, nil
}

func decodeKeyHex(keyHex string) ([]byte, error) {
	raw, err := hexDecode(keyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: key_hex is not valid hex", latcherrors.ErrInvalid)
	}

	if len(raw) != vaultcrypto.KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes", latcherrors.ErrInvalid, vaultcrypto.KeySize)
	}

	return raw, nil
}

// DeleteKeychainEntry removes the biometric key from the OS keychain.
// Called by the engine after a successful re-key away from the
// biometric-keychain method, once the new envelope is durable.
func DeleteKeychainEntry(store keychain.Store) error {
	return store.Delete(keychain.Service, keychain.Account)
}
