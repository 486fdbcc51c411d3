package vaultengine

import (
	"context"

	"github.com/latchvault/latch-core/internal/authmethod"
	"github.com/latchvault/latch-core/internal/keychain"
	"github.com/latchvault/latch-core/internal/vaultfile"
)

// ReencryptTo derives a new key via method and re-writes the envelope
// from the current in-memory entries under it. On any failure the old
// envelope remains untouched. On success, if the prior session's auth
// method was biometric-keychain and the new method differs, the old
// keychain entry is deleted only after the new envelope is durable on
// disk (spec §4.4).
func (e *Engine) ReencryptTo(method authmethod.Method, creds authmethod.Credentials, store keychain.Store) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkSession(); err != nil {
		return err
	}

	priorMethod := e.sess.authMethod

	d, err := method.Setup(context.Background(), creds)
	if err != nil {
		return err
	}

	if err := e.sealAndWrite(d, e.sess.entries); err != nil {
		return err
	}

	e.sess.vaultKey.Zero()
	e.sess.vaultKey = d.Key
	e.sess.authMethod = d.AuthMethod

	if priorMethod == vaultfile.AuthBiometricKeychain && d.AuthMethod != priorMethod && store != nil {
		_ = authmethod.DeleteKeychainEntry(store)
	}

	return nil
}

// ReencryptToWithDerived is ReencryptTo for pre-derived key material
// (`reencrypt_vault`, whose key the caller already obtained).
func (e *Engine) ReencryptToWithDerived(d authmethod.Derived, store keychain.Store) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkSession(); err != nil {
		return err
	}

	priorMethod := e.sess.authMethod

	if err := e.sealAndWrite(d, e.sess.entries); err != nil {
		return err
	}

	e.sess.vaultKey.Zero()
	e.sess.vaultKey = d.Key
	e.sess.authMethod = d.AuthMethod

	if priorMethod == vaultfile.AuthBiometricKeychain && d.AuthMethod != priorMethod && store != nil {
		_ = authmethod.DeleteKeychainEntry(store)
	}

	return nil
}
