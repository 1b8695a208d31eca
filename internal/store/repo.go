package store

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/lumenview/lumen/internal/store/lock"
	"github.com/lumenview/lumen/internal/store/vfs"
)

// entityDef describes how one entity family is persisted: its directory name,
// validator, id/summary projections and the index ordering policy.
type entityDef[D any, S any] struct {
	name      string
	validate  func(D) (D, error)
	id        func(D) string
	updatedAt func(D) time.Time
	summarize func(D) S
	summaryID func(S) string
	sortIndex func([]S) // nil preserves insertion order
}

// repo is the shared index-plus-detail machinery behind all four entity
// repositories. Every mutation follows the same protocol: acquire the per-id
// lock, read the current detail without re-entering the lock, merge and
// stamp, validate, write the detail, then rewrite the shared index wholesale.
type repo[D any, S any] struct {
	def   entityDef[D, S]
	files *vfs.Store
	locks *lock.Manager

	// Serializes index read-modify-write across ids. The cooperative
	// single-writer assumption the on-disk format was designed under does
	// not hold for goroutines, so the wholesale index rewrite needs its
	// own short critical section inside the per-id one.
	idxMu sync.Mutex
}

func newRepo[D any, S any](def entityDef[D, S], files *vfs.Store, locks *lock.Manager) *repo[D, S] {
	return &repo[D, S]{def: def, files: files, locks: locks}
}

func (r *repo[D, S]) detailPath(id string) string {
	return path.Join(r.def.name, fmt.Sprintf("%s-%s.json", r.def.name, id))
}

func (r *repo[D, S]) indexPath() string {
	return path.Join(r.def.name, "index.json")
}

func (r *repo[D, S]) lockKey(id string) string {
	return r.def.name + "-" + id
}

// readDetail is the non-locking read primitive used inside critical
// sections. ErrNotFound passes through; other adapter failures surface as
// StoreError.
func (r *repo[D, S]) readDetail(id string) (D, error) {
	d, err := vfs.ReadRecord[D](r.files, r.detailPath(id))
	if err != nil {
		var zero D
		if errors.Is(err, vfs.ErrNotFound) || errors.Is(err, vfs.ErrCorruptRecord) {
			return zero, err
		}
		return zero, storeErr("read "+r.detailPath(id), err)
	}
	return d, nil
}

// readIndex tolerates a missing or unreadable index by degrading to an empty
// list; the next write persists a fresh one.
func (r *repo[D, S]) readIndex() ([]S, error) {
	idx, err := vfs.ReadRecord[[]S](r.files, r.indexPath())
	if err != nil {
		if errors.Is(err, vfs.ErrNotFound) || errors.Is(err, vfs.ErrCorruptRecord) {
			return []S{}, nil
		}
		return nil, storeErr("read "+r.indexPath(), err)
	}
	if idx == nil {
		idx = []S{}
	}
	return idx, nil
}

// mutateIndex rewrites the index wholesale: read, apply, prune ghosts, sort,
// write. Ghost entries (index rows whose detail record is gone, left behind
// by an interrupted delete) are dropped opportunistically here.
func (r *repo[D, S]) mutateIndex(apply func([]S) []S) error {
	r.idxMu.Lock()
	defer r.idxMu.Unlock()

	idx, err := r.readIndex()
	if err != nil {
		return err
	}
	idx = apply(idx)

	pruned := idx[:0]
	for _, s := range idx {
		if r.files.Exists(r.detailPath(r.def.summaryID(s))) {
			pruned = append(pruned, s)
		}
	}
	idx = pruned

	if r.def.sortIndex != nil {
		r.def.sortIndex(idx)
	}
	if err := vfs.WriteRecord(r.files, r.indexPath(), idx); err != nil {
		return storeErr("write "+r.indexPath(), err)
	}
	return nil
}

// ListIndex returns the ordered summary list. An absent index is initialized
// to an empty list and persisted, so first run and empty are the same state.
func (r *repo[D, S]) ListIndex(ctx context.Context) ([]S, error) {
	idx, err := vfs.ReadRecord[[]S](r.files, r.indexPath())
	if err == nil {
		if idx == nil {
			idx = []S{}
		}
		return idx, nil
	}
	if !errors.Is(err, vfs.ErrNotFound) && !errors.Is(err, vfs.ErrCorruptRecord) {
		return nil, storeErr("read "+r.indexPath(), err)
	}

	r.idxMu.Lock()
	defer r.idxMu.Unlock()
	// Re-check under the index guard: another caller may have bootstrapped.
	if idx, err := vfs.ReadRecord[[]S](r.files, r.indexPath()); err == nil {
		if idx == nil {
			idx = []S{}
		}
		return idx, nil
	}
	empty := []S{}
	if err := vfs.WriteRecord(r.files, r.indexPath(), empty); err != nil {
		return nil, storeErr("bootstrap "+r.indexPath(), err)
	}
	return empty, nil
}

// GetByID is a display read: it runs outside any lock and may observe a
// snapshot that a concurrent mutation is about to replace. The read
// timestamp is recorded only after the read succeeds.
func (r *repo[D, S]) GetByID(ctx context.Context, id string) (D, error) {
	d, err := r.readDetail(id)
	if err != nil {
		var zero D
		return zero, err
	}
	r.locks.RecordReadTimestamp(r.detailPath(id), r.def.updatedAt(d))
	return d, nil
}

// Create validates and persists a new detail record, then appends its
// summary to the index, all under the repository's creation lock.
func (r *repo[D, S]) Create(ctx context.Context, d D) (D, error) {
	var out D
	err := r.locks.WithLock(ctx, r.def.name+"-create", func() error {
		valid, err := r.def.validate(d)
		if err != nil {
			return err
		}
		id := r.def.id(valid)
		if r.files.Exists(r.detailPath(id)) {
			return fmt.Errorf("create %s %s: id already exists", r.def.name, id)
		}
		if err := vfs.WriteRecord(r.files, r.detailPath(id), valid); err != nil {
			return storeErr("write "+r.detailPath(id), err)
		}
		summary := r.def.summarize(valid)
		if err := r.mutateIndex(func(idx []S) []S {
			return append(idx, summary)
		}); err != nil {
			return err
		}
		out = valid
		return nil
	})
	return out, err
}

// Update runs mutate over the current record inside the per-id critical
// section (read-modify-write never straddles a lock boundary), validates the
// result, writes the detail and replaces the index entry.
func (r *repo[D, S]) Update(ctx context.Context, id string, mutate func(D) (D, error)) (D, error) {
	var out D
	err := r.locks.WithLock(ctx, r.lockKey(id), func() error {
		cur, err := r.readDetail(id)
		if err != nil {
			return err
		}
		r.locks.RecordReadTimestamp(r.detailPath(id), r.def.updatedAt(cur))

		next, err := mutate(cur)
		if err != nil {
			return err
		}
		valid, err := r.def.validate(next)
		if err != nil {
			return err
		}
		if err := vfs.WriteRecord(r.files, r.detailPath(id), valid); err != nil {
			return storeErr("write "+r.detailPath(id), err)
		}
		summary := r.def.summarize(valid)
		if err := r.mutateIndex(func(idx []S) []S {
			for i := range idx {
				if r.def.summaryID(idx[i]) == id {
					idx[i] = summary
					return idx
				}
			}
			return append(idx, summary)
		}); err != nil {
			return err
		}
		out = valid
		return nil
	})
	return out, err
}

// Delete removes the detail record and its index entry. The ledger entry for
// the detail path is cleared only after the delete succeeds.
func (r *repo[D, S]) Delete(ctx context.Context, id string) error {
	return r.locks.WithLock(ctx, r.lockKey(id), func() error {
		if _, err := r.readDetail(id); err != nil {
			return err
		}
		if err := r.files.Delete(r.detailPath(id)); err != nil {
			if errors.Is(err, vfs.ErrNotFound) {
				return err
			}
			return storeErr("delete "+r.detailPath(id), err)
		}
		r.locks.ClearTimestamp(r.detailPath(id))
		return r.mutateIndex(func(idx []S) []S {
			out := idx[:0]
			for _, s := range idx {
				if r.def.summaryID(s) != id {
					out = append(out, s)
				}
			}
			return out
		})
	})
}
