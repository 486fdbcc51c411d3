// Package vaultfile implements the on-disk envelope: OS path resolution,
// schema validation, and the atomic temp-write/fsync/rename/dir-fsync write
// path (spec §4.2), grounded on the teacher's migration-driven persistence
// layer but replacing its SQLite container with a flat JSON envelope.
package vaultfile

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// FileName is the name of the envelope file within its directory.
const FileName = "vault.enc"

const tmpName = FileName + ".tmp"

// DefaultPath resolves the OS-specific vault location from spec §4.2.
func DefaultPath() (string, error) {
	dir, err := defaultDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, FileName), nil
}

func defaultDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", errors.New("vaultfile: APPDATA is not set")
		}

		return filepath.Join(appData, "Latch"), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}

		return filepath.Join(home, "Library", "Application Support", "Latch"), nil
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}

		return filepath.Join(home, ".config", "latch"), nil
	}
}

// EnsureDir creates the parent directory of path with user-only
// permissions where the OS supports it.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o700)
}
