package vaultfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/latchvault/latch-core/internal/latcherrors"
)

// File is a handle on the envelope at a fixed path on disk.
type File struct {
	path string
}

// New returns a File handle rooted at path.
func New(path string) *File {
	return &File{path: path}
}

// Path returns the envelope's file path.
func (f *File) Path() string {
	return f.path
}

// Exists reports whether the envelope file is present.
func (f *File) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Read loads and validates the envelope. Returns latcherrors.ErrNotFound if
// no file exists, or latcherrors.ErrInvalid (wrapped, "corrupt") if the
// file exists but fails to parse or validate.
func (f *File) Read() (Envelope, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return Envelope{}, fmt.Errorf("%w: vault file", latcherrors.ErrNotFound)
	}

	if err != nil {
		return Envelope{}, fmt.Errorf("%w: reading vault file: %v", latcherrors.ErrIO, err)
	}

	env, err := Decode(raw)
	if err != nil {
		return Envelope{}, fmt.Errorf("vault file is corrupt: %w", err)
	}

	if err := env.Validate(); err != nil {
		return Envelope{}, fmt.Errorf("vault file is corrupt: %w", err)
	}

	return env, nil
}

// Write atomically persists env: encode → write to a sibling .tmp file →
// fsync the file → rename over the existing path → fsync the containing
// directory. A crash at any point leaves either the prior envelope intact
// or the new one fully in place; a leftover .tmp file from an interrupted
// write is simply overwritten (and ignored by Read, since Read only ever
// opens the canonical path).
func (f *File) Write(env Envelope) error {
	if err := env.Validate(); err != nil {
		return err
	}

	raw, err := Encode(env)
	if err != nil {
		return fmt.Errorf("%w: encoding vault file: %v", latcherrors.ErrIO, err)
	}

	if err := EnsureDir(f.path); err != nil {
		return fmt.Errorf("%w: creating vault directory: %v", latcherrors.ErrIO, err)
	}

	dir := filepath.Dir(f.path)
	tmpPath := filepath.Join(dir, tmpName)

	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("%w: opening temp vault file: %v", latcherrors.ErrIO, err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing temp vault file: %v", latcherrors.ErrIO, err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: fsync temp vault file: %v", latcherrors.ErrIO, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing temp vault file: %v", latcherrors.ErrIO, err)
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("%w: renaming vault file: %v", latcherrors.ErrIO, err)
	}

	if err := syncDir(dir); err != nil {
		return fmt.Errorf("%w: fsync vault directory: %v", latcherrors.ErrIO, err)
	}

	return nil
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		// Directory fsync is unavailable on some platforms (e.g. Windows);
		// the rename above is already durable enough there.
		return nil
	}
	defer d.Close()

	if err := d.Sync(); err != nil {
		return nil
	}

	return nil
}
