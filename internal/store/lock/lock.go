// Package lock provides named mutual exclusion for logical resources plus a
// read-timestamp ledger keyed by physical path.
//
// Keys are logical resource names ("content-<id>"), not storage paths, so one
// acquisition can cover a detail file and its contribution to a shared index.
package lock

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

type entry struct {
	sem  *semaphore.Weighted
	refs int
}

// Manager serializes critical sections per key. Waiters for the same key run
// in arrival order; different keys never block each other.
type Manager struct {
	mu    sync.Mutex
	locks map[string]*entry

	stampMu sync.RWMutex
	stamps  map[string]time.Time
}

func NewManager() *Manager {
	return &Manager{
		locks:  make(map[string]*entry),
		stamps: make(map[string]time.Time),
	}
}

func (m *Manager) acquire(key string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.locks[key]
	if !ok {
		e = &entry{sem: semaphore.NewWeighted(1)}
		m.locks[key] = e
	}
	e.refs++
	return e
}

func (m *Manager) release(key string, e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(m.locks, key)
	}
}

// WithLock runs fn as the sole critical section for key. The lock is released
// on every exit path, including a panic inside fn.
func (m *Manager) WithLock(ctx context.Context, key string, fn func() error) error {
	e := m.acquire(key)
	if err := e.sem.Acquire(ctx, 1); err != nil {
		m.release(key, e)
		return err
	}
	defer func() {
		e.sem.Release(1)
		m.release(key, e)
	}()
	return fn()
}

// RecordReadTimestamp stores the last observed write time for a physical
// path. Callers invoke it strictly after the corresponding read succeeds.
func (m *Manager) RecordReadTimestamp(path string, observed time.Time) {
	m.stampMu.Lock()
	defer m.stampMu.Unlock()
	m.stamps[path] = observed
}

// ClearTimestamp drops the ledger entry for a path after a successful delete.
func (m *Manager) ClearTimestamp(path string) {
	m.stampMu.Lock()
	defer m.stampMu.Unlock()
	delete(m.stamps, path)
}

// LastRead returns the ledger entry for a path. The ledger is bookkeeping for
// cross-context staleness checks; nothing in the store consults it to reject
// a write today.
func (m *Manager) LastRead(path string) (time.Time, bool) {
	m.stampMu.RLock()
	defer m.stampMu.RUnlock()
	t, ok := m.stamps[path]
	return t, ok
}
