// Package vfs is the virtual store adapter: typed JSON records and raw bytes
// addressed by slash-separated paths inside a sandboxed filesystem.
package vfs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

var (
	// ErrNotFound signals a read or delete of a path that was never written.
	ErrNotFound = errors.New("record not found")
	// ErrCorruptRecord signals a stored payload that no longer decodes.
	ErrCorruptRecord = errors.New("corrupt record")
)

// Store wraps a sandboxed filesystem. Writes are durable before the call
// returns; no retries happen at this layer.
type Store struct {
	fs afero.Fs
}

// New wraps an existing filesystem, typically afero.NewMemMapFs in tests.
func New(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// NewOS roots a store at dir on the real filesystem, creating it if needed.
func NewOS(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("vfs: create root: %w", err)
	}
	return &Store{fs: afero.NewBasePathFs(afero.NewOsFs(), dir)}, nil
}

// safePath rejects absolute paths and anything that escapes the root.
func safePath(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("vfs: empty path")
	}
	cleaned := path.Clean(p)
	if path.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("vfs: path escapes store root: %s", p)
	}
	return cleaned, nil
}

// ReadBytes returns the raw payload at path, or ErrNotFound.
func (s *Store) ReadBytes(p string) ([]byte, error) {
	abs, err := safePath(p)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("vfs: read %s: %w", p, ErrNotFound)
		}
		return nil, fmt.Errorf("vfs: read %s: %w", p, err)
	}
	return data, nil
}

// WriteBytes durably writes payload at path: tmp file, sync, rename.
func (s *Store) WriteBytes(p string, data []byte) error {
	abs, err := safePath(p)
	if err != nil {
		return err
	}
	dir := path.Dir(abs)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("vfs: mkdir: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, ".lumen-tmp-*")
	if err != nil {
		return fmt.Errorf("vfs: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = s.fs.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("vfs: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("vfs: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("vfs: close temp: %w", err)
	}
	if err := s.fs.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("vfs: rename: %w", err)
	}
	success = true
	return nil
}

// Delete removes the record at path, or returns ErrNotFound.
func (s *Store) Delete(p string) error {
	abs, err := safePath(p)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(abs); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("vfs: delete %s: %w", p, ErrNotFound)
		}
		return fmt.Errorf("vfs: delete %s: %w", p, err)
	}
	return nil
}

// Exists reports whether a record is present at path.
func (s *Store) Exists(p string) bool {
	abs, err := safePath(p)
	if err != nil {
		return false
	}
	ok, err := afero.Exists(s.fs, abs)
	return err == nil && ok
}

// ListChildren returns the names of entries directly under dir. A missing
// directory yields an empty list, not an error.
func (s *Store) ListChildren(dir string) ([]string, error) {
	abs, err := safePath(dir)
	if err != nil {
		return nil, err
	}
	infos, err := afero.ReadDir(s.fs, abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("vfs: list %s: %w", dir, err)
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	return names, nil
}

// ReadRecord decodes the JSON record at path into T. A payload that fails to
// decode is reported as ErrCorruptRecord, distinct from ErrNotFound.
func ReadRecord[T any](s *Store, p string) (T, error) {
	var out T
	data, err := s.ReadBytes(p)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("vfs: decode %s: %w: %v", p, ErrCorruptRecord, err)
	}
	return out, nil
}

// WriteRecord encodes value as JSON and durably writes it at path.
func WriteRecord[T any](s *Store, p string, value T) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("vfs: encode %s: %w", p, err)
	}
	return s.WriteBytes(p, data)
}
