// Package filesystem routes every disk access through a swappable afero backend so tests
// can run against memory.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active backend.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the native filesystem.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs switches to a volatile in-memory filesystem.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// WriteFileAtomic writes data to a temporary file next to path and renames it into place,
// so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := backend.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := backend.TempFile(dir, ".pipewatch-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = backend.Remove(tmpPath)
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = backend.Remove(tmpPath)
		return fmt.Errorf("close: %w", err)
	}
	if err := backend.Chmod(tmpPath, perm); err != nil {
		_ = backend.Remove(tmpPath)
		return fmt.Errorf("chmod: %w", err)
	}
	if err := backend.Rename(tmpPath, path); err != nil {
		_ = backend.Remove(tmpPath)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
