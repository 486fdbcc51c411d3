package vaultcrypto_test

import (
	"testing"

	"github.com/latchvault/latch-core/internal/vaultcrypto"
)

func mustKey(t *testing.T, seed byte) []byte {
	t.Helper()

	k := make([]byte, vaultcrypto.KeySize)
	for i := range k {
		k[i] = seed
	}

	return k
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := mustKey(t, 0x42)
	plaintext := []byte(`{"entries":[]}`)

	nonce, ciphertext, err := vaultcrypto.Encrypt(key, plaintext)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	got, err := vaultcrypto.Decrypt(key, nonce, ciphertext)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}

	if string(got) != string(plaintext) {
		t.Fatalf("got %q, want %q", got, plaintext)
	}
}

func TestDecryptWrongKeyFails(t *testing.T) {
	key := mustKey(t, 0x01)
	wrong := mustKey(t, 0x02)

	nonce, ciphertext, err := vaultcrypto.Encrypt(key, []byte("secret"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	if _, err := vaultcrypto.Decrypt(wrong, nonce, ciphertext); err != vaultcrypto.ErrTagMismatch {
		t.Fatalf("got err=%v, want ErrTagMismatch", err)
	}
}

func TestDecryptTamperedCiphertextFails(t *testing.T) {
	key := mustKey(t, 0x09)

	nonce, ciphertext, err := vaultcrypto.Encrypt(key, []byte("secret"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	tampered := append([]byte(nil), ciphertext...)
	tampered[0] ^= 0xFF

	if _, err := vaultcrypto.Decrypt(key, nonce, tampered); err != vaultcrypto.ErrTagMismatch {
		t.Fatalf("got err=%v, want ErrTagMismatch", err)
	}

	tamperedNonce := append([]byte(nil), nonce...)
	tamperedNonce[0] ^= 0xFF

	if _, err := vaultcrypto.Decrypt(key, tamperedNonce, ciphertext); err != vaultcrypto.ErrTagMismatch {
		t.Fatalf("got err=%v, want ErrTagMismatch", err)
	}
}

func TestKeyZeroAndMarshal(t *testing.T) {
	k, err := vaultcrypto.NewKey(mustKey(t, 0xAB))
	if err != nil {
		t.Fatalf("new key: %v", err)
	}

	if _, err := k.MarshalJSON(); err == nil {
		t.Fatalf("expected MarshalJSON to fail")
	}

	k.Zero()

	for _, b := range k.Bytes() {
		if b != 0 {
			t.Fatalf("key not zeroized")
		}
	}
}
