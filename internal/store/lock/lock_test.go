package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameKeyNeverOverlaps(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	var inside int32
	var maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.WithLock(ctx, "content-42", func() error {
				cur := atomic.AddInt32(&inside, 1)
				for {
					prev := atomic.LoadInt32(&maxInside)
					if cur <= prev || atomic.CompareAndSwapInt32(&maxInside, prev, cur) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInside), "critical sections for one key overlapped")
}

func TestDistinctKeysOverlap(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	holding := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- m.WithLock(ctx, "content-a", func() error {
			close(holding)
			<-release
			return nil
		})
	}()

	<-holding
	// A different key must acquire immediately even while content-a is held.
	acquired := make(chan struct{})
	go func() {
		_ = m.WithLock(ctx, "content-b", func() error {
			close(acquired)
			return nil
		})
	}()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("distinct key blocked behind an unrelated lock")
	}

	close(release)
	require.NoError(t, <-done)
}

func TestQueuedCallerRunsAfterFailure(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	boom := assert.AnError
	err := m.WithLock(ctx, "layout-1", func() error { return boom })
	assert.ErrorIs(t, err, boom)

	// The failed section must have released the lock.
	ran := false
	require.NoError(t, m.WithLock(ctx, "layout-1", func() error {
		ran = true
		return nil
	}))
	assert.True(t, ran)
}

func TestPanicReleasesLock(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	func() {
		defer func() { _ = recover() }()
		_ = m.WithLock(ctx, "schedule-9", func() error {
			panic("boom")
		})
	}()

	acquireCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, m.WithLock(acquireCtx, "schedule-9", func() error { return nil }))
}

func TestCancelledWaiterReturnsError(t *testing.T) {
	m := NewManager()

	holding := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = m.WithLock(context.Background(), "playlist-7", func() error {
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := m.WithLock(ctx, "playlist-7", func() error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
}

func TestReadTimestampLedger(t *testing.T) {
	m := NewManager()

	_, ok := m.LastRead("content/content-1.json")
	assert.False(t, ok)

	stamp := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m.RecordReadTimestamp("content/content-1.json", stamp)

	got, ok := m.LastRead("content/content-1.json")
	require.True(t, ok)
	assert.Equal(t, stamp, got)

	m.ClearTimestamp("content/content-1.json")
	_, ok = m.LastRead("content/content-1.json")
	assert.False(t, ok)
}
