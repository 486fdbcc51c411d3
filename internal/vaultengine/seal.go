package vaultengine

import (
	"github.com/latchvault/latch-core/internal/authmethod"
	"github.com/latchvault/latch-core/internal/entry"
	"github.com/latchvault/latch-core/internal/vaultcrypto"
	"github.com/latchvault/latch-core/internal/vaultfile"
)

// sealAndWrite encrypts entries under d.Key with a fresh nonce and writes
// the resulting envelope atomically. Must be called with e.mu held.
func (e *Engine) sealAndWrite(d authmethod.Derived, entries []entry.Entry) error {
	plaintext, err := encodePlaintext(entries)
	if err != nil {
		return err
	}

	nonce, ciphertext, err := vaultcrypto.Encrypt(d.Key.Bytes(), plaintext)
	vaultcrypto.Zero(plaintext)

	if err != nil {
		return err
	}

	env := vaultfile.Envelope{
		Version:    vaultfile.Version,
		AuthMethod: d.AuthMethod,
		KDF:        d.KDF,
		Salt:       d.Salt,
		Data: vaultfile.Data{
			Nonce:      hexEncodeLocal(nonce),
			Ciphertext: hexEncodeLocal(ciphertext),
		},
	}

	return e.file.Write(env)
}
