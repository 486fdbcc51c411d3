// Package vaultengine implements the VaultEngine state machine of spec
// §4.4: the NoVaultOrLocked ⇄ Unlocked lifecycle, session-timeout
// enforcement, and every entry-mutating operation, each of which
// re-encrypts and rewrites the full envelope atomically.
package vaultengine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/latchvault/latch-core/internal/authmethod"
	"github.com/latchvault/latch-core/internal/entry"
	"github.com/latchvault/latch-core/internal/latcherrors"
	"github.com/latchvault/latch-core/internal/vaultcrypto"
	"github.com/latchvault/latch-core/internal/vaultfile"
)

// LockListener is notified whenever the engine transitions to locked,
// whether by explicit lock() or by session timeout (spec §5's optional
// "vault-locked" background event). Called with the engine lock held, so
// implementations must not call back into the Engine.
type LockListener func()

// Engine is the single owner of one vault's on-disk envelope and
// in-memory session state. All exported methods are safe for concurrent
// use; spec §5 models the UI as serializing commands through one
// exclusive lock per engine instance, which is exactly sync.Mutex here.
type Engine struct {
	mu   sync.Mutex
	file *vaultfile.File
	sess *session
	now  func() time.Time

	onLock LockListener
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithClock overrides the engine's time source. Used by tests to control
// session-timeout behavior deterministically.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLockListener registers a callback fired on every lock transition.
func WithLockListener(l LockListener) Option {
	return func(e *Engine) { e.onLock = l }
}

// New constructs an Engine over the envelope at file, initially
// NoVaultOrLocked.
func New(file *vaultfile.File, opts ...Option) *Engine {
	e := &Engine{file: file, sess: &session{}, now: time.Now}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Status reports spec's `vault_status`: whether an envelope exists on
// disk and whether this engine instance currently holds an unlocked
// session.
func (e *Engine) Status() (hasVault, isUnlocked bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.file.Exists(), e.sess.active()
}

// AuthMethod returns the auth_method recorded in the on-disk envelope,
// available without unlocking (spec's `get_vault_auth_method`).
func (e *Engine) AuthMethod() (vaultfile.AuthMethod, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	env, err := e.file.Read()
	if err != nil {
		return "", err
	}

	return env.AuthMethod, nil
}

// AuthPreferences returns spec's `get_auth_preferences`: the envelope's
// auth_method plus whether the current session is valid and, if so, how
// many seconds remain before timeout. Does not refresh the session.
func (e *Engine) AuthPreferences() (authMethod vaultfile.AuthMethod, sessionValid bool, remaining time.Duration, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	env, err := e.file.Read()
	if err != nil {
		return "", false, 0, err
	}

	now := e.now()

	if !e.sess.active() || e.sess.expired(now) {
		return env.AuthMethod, false, 0, nil
	}

	elapsed := now.Sub(e.sess.sessionStart)

	return env.AuthMethod, true, SessionTimeout - elapsed, nil
}

// Init creates a brand-new vault using the key material method derived
// from creds, and transitions to Unlocked. Refuses with AlreadyExists if
// a vault is already present on disk.
func (e *Engine) Init(method authmethod.Method, creds authmethod.Credentials) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.file.Exists() {
		return fmt.Errorf("%w: vault", latcherrors.ErrAlreadyExists)
	}

	d, err := method.Setup(context.Background(), creds)
	if err != nil {
		return err
	}

	return e.writeFreshAndUnlock(d, []entry.Entry{})
}

// InitWithDerived is Init for callers that have already produced a
// Derived key outside the authmethod.Method interface (e.g. the
// `init_vault_with_key` command, whose key material is caller-supplied
// rather than derived by this core).
func (e *Engine) InitWithDerived(d authmethod.Derived) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.file.Exists() {
		return fmt.Errorf("%w: vault", latcherrors.ErrAlreadyExists)
	}

	return e.writeFreshAndUnlock(d, []entry.Entry{})
}

func (e *Engine) writeFreshAndUnlock(d authmethod.Derived, entries []entry.Entry) error {
	if err := e.sealAndWrite(d, entries); err != nil {
		return err
	}

	e.sess = &session{vaultKey: d.Key, entries: entries, sessionStart: e.now(), authMethod: d.AuthMethod}

	return nil
}

// Unlock derives the key via method against the on-disk envelope and
// attempts to decrypt it. On GCM failure returns AuthFailed and leaves
// the engine NoVaultOrLocked.
func (e *Engine) Unlock(method authmethod.Method, creds authmethod.Credentials) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	env, err := e.file.Read()
	if err != nil {
		return err
	}

	d, err := method.Unlock(context.Background(), env, creds)
	if err != nil {
		return err
	}

	return e.completeUnlock(env, d)
}

// UnlockWithDerived is Unlock for pre-derived key material
// (`unlock_vault_with_key`).
func (e *Engine) UnlockWithDerived(d authmethod.Derived) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	env, err := e.file.Read()
	if err != nil {
		return err
	}

	return e.completeUnlock(env, d)
}

func (e *Engine) completeUnlock(env vaultfile.Envelope, d authmethod.Derived) error {
	plaintext, err := vaultcrypto.Decrypt(d.Key.Bytes(), env.NonceBytes(), env.CiphertextBytes())
	if err != nil {
		return fmt.Errorf("%w", latcherrors.ErrAuthFailed)
	}

	entries, err := decodePlaintext(plaintext)
	vaultcrypto.Zero(plaintext)

	if err != nil {
		return fmt.Errorf("%w: decrypted vault body is malformed", latcherrors.ErrInvalid)
	}

	e.sess = &session{vaultKey: d.Key, entries: entries, sessionStart: e.now(), authMethod: d.AuthMethod}

	return nil
}

// Lock zeroizes the session key and clears in-memory entries.
// Idempotent.
func (e *Engine) Lock() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lockLocked()
}

func (e *Engine) lockLocked() {
	wasActive := e.sess.active()

	e.sess.zero()
	e.sess = &session{}

	if wasActive && e.onLock != nil {
		e.onLock()
	}
}

// checkSession is the guard every authenticated operation runs first: if
// the session has exceeded SessionTimeout it locks and returns Locked;
// otherwise it refreshes session_start. Must be called with e.mu held.
func (e *Engine) checkSession() error {
	now := e.now()

	if !e.sess.active() {
		return fmt.Errorf("%w", latcherrors.ErrLocked)
	}

	if e.sess.expired(now) {
		e.lockLocked()
		return fmt.Errorf("%w", latcherrors.ErrLocked)
	}

	e.sess.refresh(now)

	return nil
}

