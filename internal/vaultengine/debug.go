//go:build debug

package vaultengine

// KeyZeroedForTest exposes whether e's session key has been released and
// zeroized, for debug-build test assertions only. Not part of the public
// command surface.
func (e *Engine) KeyZeroedForTest() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return !e.sess.active()
}
