package vaultengine

import (
	"time"

	"github.com/latchvault/latch-core/internal/entry"
	"github.com/latchvault/latch-core/internal/vaultcrypto"
	"github.com/latchvault/latch-core/internal/vaultfile"
)

// SessionTimeout is the fixed wall-clock inactivity window (spec §4.4).
const SessionTimeout = 30 * time.Minute

// session is the in-memory SessionState of spec §3. It exists only while
// the engine is Unlocked.
type session struct {
	vaultKey     *vaultcrypto.Key
	entries      []entry.Entry
	sessionStart time.Time
	authMethod   vaultfile.AuthMethod
}

func (s *session) active() bool {
	return s != nil && s.vaultKey != nil
}

// zero wipes the key material. Called by lock() and by timeout.
func (s *session) zero() {
	if s == nil {
		return
	}

	s.vaultKey.Zero()
	s.vaultKey = nil
	s.entries = nil
	s.sessionStart = time.Time{}
}

// expired reports whether, as of now, the session has exceeded
// SessionTimeout since its last refresh.
func (s *session) expired(now time.Time) bool {
	if !s.active() {
		return true
	}

	return now.Sub(s.sessionStart) > SessionTimeout
}

// refresh bumps sessionStart to now, the "stay Unlocked" transition taken
// by every successful authenticated command.
func (s *session) refresh(now time.Time) {
	s.sessionStart = now
}
