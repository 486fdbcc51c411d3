package authmethod_test

import (
	"context"
	"errors"
	"testing"

	"github.com/latchvault/latch-core/internal/authmethod"
	"github.com/latchvault/latch-core/internal/keychain"
	"github.com/latchvault/latch-core/internal/latcherrors"
	"github.com/latchvault/latch-core/internal/vaultfile"
)

func envelopeFrom(d authmethod.Derived) vaultfile.Envelope {
	return vaultfile.Envelope{
		Version:    vaultfile.Version,
		AuthMethod: d.AuthMethod,
		KDF:        d.KDF,
		Salt:       d.Salt,
	}
}

func TestPasswordSetupThenUnlock(t *testing.T) {
	var m authmethod.Password

	setup, err := m.Setup(context.Background(), authmethod.Credentials{Password: "correct horse battery staple"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	env := envelopeFrom(setup)

	unlocked, err := m.Unlock(context.Background(), env, authmethod.Credentials{Password: "correct horse battery staple"})
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}

	if !setup.Key.Equal(unlocked.Key) {
		t.Fatalf("expected re-derived key to match")
	}
}

func TestPasswordUnlockWrongPasswordDoesNotMatch(t *testing.T) {
	var m authmethod.Password

	setup, err := m.Setup(context.Background(), authmethod.Credentials{Password: "right"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	env := envelopeFrom(setup)

	wrong, err := m.Unlock(context.Background(), env, authmethod.Credentials{Password: "wrong"})
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}

	if setup.Key.Equal(wrong.Key) {
		t.Fatalf("expected keys to differ for wrong password")
	}
}

type fakeVerifier struct {
	subject string
	err     error
}

func (f fakeVerifier) Verify(_ context.Context, _ string) (string, error) {
	return f.subject, f.err
}

func pepper() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestOAuthSetupThenUnlock(t *testing.T) {
	m := authmethod.OAuth{Verifier: fakeVerifier{subject: "user-123"}, Pepper: pepper()}

	setup, err := m.Setup(context.Background(), authmethod.Credentials{IDToken: "tok"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	env := envelopeFrom(setup)

	unlocked, err := m.Unlock(context.Background(), env, authmethod.Credentials{IDToken: "tok"})
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}

	if !setup.Key.Equal(unlocked.Key) {
		t.Fatalf("expected re-derived key to match")
	}
}

func TestOAuthRejectsShortPepper(t *testing.T) {
	m := authmethod.OAuth{Verifier: fakeVerifier{subject: "user-123"}, Pepper: []byte("too-short")}

	if _, err := m.Setup(context.Background(), authmethod.Credentials{IDToken: "tok"}); !errors.Is(err, latcherrors.ErrInvalid) {
		t.Fatalf("got %v, want ErrInvalid", err)
	}
}

func TestOAuthUnlockSubjectMismatchFails(t *testing.T) {
	m := authmethod.OAuth{Verifier: fakeVerifier{subject: "user-123"}, Pepper: pepper()}

	setup, err := m.Setup(context.Background(), authmethod.Credentials{IDToken: "tok"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	env := envelopeFrom(setup)

	other := authmethod.OAuth{Verifier: fakeVerifier{subject: "someone-else"}, Pepper: pepper()}

	if _, err := other.Unlock(context.Background(), env, authmethod.Credentials{IDToken: "tok2"}); !errors.Is(err, latcherrors.ErrAuthFailed) {
		t.Fatalf("got %v, want ErrAuthFailed", err)
	}
}

func TestOAuthInvalidTokenIsAuthFailed(t *testing.T) {
	m := authmethod.OAuth{Verifier: fakeVerifier{err: errors.New("boom")}, Pepper: pepper()}

	if _, err := m.Setup(context.Background(), authmethod.Credentials{IDToken: "bad"}); !errors.Is(err, latcherrors.ErrAuthFailed) {
		t.Fatalf("got %v, want ErrAuthFailed", err)
	}
}

func TestBiometricKeychainSetupThenUnlock(t *testing.T) {
	store := keychain.NewMemory()
	m := authmethod.BiometricKeychain{Store: store}

	setup, err := m.Setup(context.Background(), authmethod.Credentials{})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	env := envelopeFrom(setup)

	unlocked, err := m.Unlock(context.Background(), env, authmethod.Credentials{})
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}

	if !setup.Key.Equal(unlocked.Key) {
		t.Fatalf("expected keychain-stored key to match")
	}
}

func TestBiometricKeychainUnlockMissingEntryFails(t *testing.T) {
	store := keychain.NewMemory()
	m := authmethod.BiometricKeychain{Store: store}

	env := vaultfile.Envelope{AuthMethod: vaultfile.AuthBiometricKeychain, KDF: vaultfile.KDFNone}

	if _, err := m.Unlock(context.Background(), env, authmethod.Credentials{}); !errors.Is(err, latcherrors.ErrAuthFailed) {
		t.Fatalf("got %v, want ErrAuthFailed", err)
	}
}

func TestKeyedFromHexRoundTrip(t *testing.T) {
	var k authmethod.Keyed

	raw := "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"

	d, err := k.FromHex(raw, "none")
	if err != nil {
		t.Fatalf("from hex: %v", err)
	}

	if d.AuthMethod != vaultfile.AuthBiometricKeychain || d.KDF != vaultfile.KDFNone {
		t.Fatalf("unexpected derived metadata: %+v", d)
	}
}

func TestKeyedFromHexRejectsWrongLength(t *testing.T) {
	var k authmethod.Keyed

	if _, err := k.FromHex("ab", "none"); !errors.Is(err, latcherrors.ErrInvalid) {
		t.Fatalf("got %v, want ErrInvalid", err)
	}
}
