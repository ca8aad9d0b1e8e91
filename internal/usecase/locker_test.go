package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	m := NewKeyedMutex()

	var (
		inside  atomic.Int32
		maxSeen atomic.Int32
		wg      sync.WaitGroup
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := m.Lock(context.Background(), "candidate")
			if !assert.NoError(t, err) {
				return
			}
			n := inside.Add(1)
			if n > maxSeen.Load() {
				maxSeen.Store(n)
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen.Load())
	assert.Empty(t, m.entries)
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	m := NewKeyedMutex()
	unlockA, err := m.Lock(context.Background(), "a")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := m.Lock(ctx, "b")
	require.NoError(t, err)
	unlockB()
}

func TestKeyedMutex_ContextCancelled(t *testing.T) {
	m := NewKeyedMutex()
	unlock, err := m.Lock(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = m.Lock(ctx, "a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock()
	assert.Empty(t, m.entries)
}

func TestLeaseLocker_AcquiresAndReleases(t *testing.T) {
	store := newFakeLeaseStore()
	l := NewLeaseLocker(store, time.Second, nil)

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	assert.Contains(t, store.held, "k")

	unlock()
	assert.NotContains(t, store.held, "k")
	assert.Len(t, store.released, 1)
}

func TestLeaseLocker_HeldElsewhere(t *testing.T) {
	store := newFakeLeaseStore()
	store.held["k"] = "other-process"
	l := NewLeaseLocker(store, 60*time.Millisecond, nil)
	l.retry = 5 * time.Millisecond

	_, err := l.Lock(context.Background(), "k")
	assert.ErrorIs(t, err, ErrGenerationInProgress)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, l.local.entries)
}

func TestLeaseLocker_StoreDownFallsBackToLocal(t *testing.T) {
	store := newFakeLeaseStore()
	store.err = errStoreDown
	l := NewLeaseLocker(store, time.Second, nil)

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock2, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	unlock2()
}
