package vaultengine

import (
	"fmt"
	"time"

	"github.com/latchvault/latch-core/internal/authmethod"
	"github.com/latchvault/latch-core/internal/entry"
	"github.com/latchvault/latch-core/internal/latcherrors"
	"github.com/latchvault/latch-core/internal/search"
	"github.com/latchvault/latch-core/internal/vaultfile"
)

// AddEntry validates and appends a new entry, then re-encrypts and
// writes the full envelope. Returns the new entry's id.
func (e *Engine) AddEntry(fields entry.Fields) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkSession(); err != nil {
		return "", err
	}

	env, err := e.file.Read()
	if err != nil {
		return "", err
	}

	now := time.Now()
	if e.now != nil {
		now = e.now()
	}

	ent, err := entry.New(fields, now)
	if err != nil {
		return "", err
	}

	entries := append(append([]entry.Entry(nil), e.sess.entries...), ent)

	if err := e.reseal(env, entries); err != nil {
		return "", err
	}

	e.sess.entries = entries

	return ent.ID, nil
}

// UpdateEntry locates the entry by id, replaces its mutable fields, and
// re-writes the envelope. Returns NotFound if no entry has that id.
func (e *Engine) UpdateEntry(id string, fields entry.Fields) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkSession(); err != nil {
		return err
	}

	env, err := e.file.Read()
	if err != nil {
		return err
	}

	idx := indexOf(e.sess.entries, id)
	if idx < 0 {
		return fmt.Errorf("%w: entry %q", latcherrors.ErrNotFound, id)
	}

	now := e.now()

	updated, err := e.sess.entries[idx].Apply(fields, now)
	if err != nil {
		return err
	}

	entries := append([]entry.Entry(nil), e.sess.entries...)
	entries[idx] = updated

	if err := e.reseal(env, entries); err != nil {
		return err
	}

	e.sess.entries = entries

	return nil
}

// DeleteEntry removes the entry with the given id and re-writes the
// envelope. Returns NotFound if no entry has that id.
func (e *Engine) DeleteEntry(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkSession(); err != nil {
		return err
	}

	env, err := e.file.Read()
	if err != nil {
		return err
	}

	idx := indexOf(e.sess.entries, id)
	if idx < 0 {
		return fmt.Errorf("%w: entry %q", latcherrors.ErrNotFound, id)
	}

	entries := make([]entry.Entry, 0, len(e.sess.entries)-1)
	entries = append(entries, e.sess.entries[:idx]...)
	entries = append(entries, e.sess.entries[idx+1:]...)

	if err := e.reseal(env, entries); err != nil {
		return err
	}

	e.sess.entries = entries

	return nil
}

// GetFullEntry returns the complete, secret-exposing Entry for id.
func (e *Engine) GetFullEntry(id string) (entry.Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkSession(); err != nil {
		return entry.Entry{}, err
	}

	idx := indexOf(e.sess.entries, id)
	if idx < 0 {
		return entry.Entry{}, fmt.Errorf("%w: entry %q", latcherrors.ErrNotFound, id)
	}

	return e.sess.entries[idx], nil
}

// RequestSecret returns the value of one field of one entry.
func (e *Engine) RequestSecret(id string, field entry.Field) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkSession(); err != nil {
		return "", err
	}

	idx := indexOf(e.sess.entries, id)
	if idx < 0 {
		return "", fmt.Errorf("%w: entry %q", latcherrors.ErrNotFound, id)
	}

	v, ok := e.sess.entries[idx].Value(field)
	if !ok {
		return "", fmt.Errorf("%w: unknown field %q", latcherrors.ErrInvalid, field)
	}

	return v, nil
}

// Search runs a session-guarded fuzzy search over decrypted entries.
func (e *Engine) Search(query string) ([]entry.Preview, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkSession(); err != nil {
		return nil, err
	}

	return search.Search(e.sess.entries, query), nil
}

// Snapshot returns a defensive copy of the decrypted entries for
// password-quality analysis, which must run outside the engine lock
// (spec §5). Refreshes the session like any other authenticated op.
func (e *Engine) Snapshot() ([]entry.Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkSession(); err != nil {
		return nil, err
	}

	return append([]entry.Entry(nil), e.sess.entries...), nil
}

// reseal re-encrypts entries under the active session key, preserving
// env's auth_method/kdf/salt metadata (entry mutations never change how
// the vault is unlocked). Must be called with e.mu held.
func (e *Engine) reseal(env vaultfile.Envelope, entries []entry.Entry) error {
	d := authmethod.Derived{
		Key:        e.sess.vaultKey,
		AuthMethod: env.AuthMethod,
		KDF:        env.KDF,
		Salt:       env.Salt,
	}

	return e.sealAndWrite(d, entries)
}

func indexOf(entries []entry.Entry, id string) int {
	for i, ent := range entries {
		if ent.ID == id {
			return i
		}
	}

	return -1
}
