package store

import (
	"fmt"
	"strings"

	"github.com/lumenview/lumen/internal/model"
	"github.com/lumenview/lumen/internal/store/vfs"
)

// Sentinels from the adapter, re-exported so callers depend on one package.
var (
	ErrNotFound      = vfs.ErrNotFound
	ErrCorruptRecord = vfs.ErrCorruptRecord
)

// ConflictError is a refused delete: the entity is still referenced. It
// carries the blocking playlists so the caller can name them to the user.
type ConflictError struct {
	Entity     string
	ID         string
	References []model.PlaylistRef
}

func (e *ConflictError) Error() string {
	names := make([]string, len(e.References))
	for i, r := range e.References {
		names[i] = r.Name
	}
	return fmt.Sprintf("%s %s is in use by playlists: %s", e.Entity, e.ID, strings.Join(names, ", "))
}

// StoreError is an adapter-level I/O failure. Always fatal to the operation
// that hit it; never partially applied beyond the writes already reported.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
