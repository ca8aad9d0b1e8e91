package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	applog "talent-match/internal/logger"

	"go.uber.org/zap"
)

// Locker serializes work per key. The returned unlock func must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// KeyedMutex is an in-process Locker. Entries are dropped once nobody holds or waits on them.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyedEntry
}

type keyedEntry struct {
	ch   chan struct{}
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*keyedEntry)}
}

func (m *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	m.mu.Lock()
	e, ok := m.entries[key]
	if !ok {
		e = &keyedEntry{ch: make(chan struct{}, 1)}
		m.entries[key] = e
	}
	e.refs++
	m.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		m.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			m.release(key, e)
		})
	}, nil
}

func (m *KeyedMutex) release(key string, e *keyedEntry) {
	m.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(m.entries, key)
	}
	m.mu.Unlock()
}

// LeaseStore is the distributed half of LeaseLocker; cache.Redis implements it.
type LeaseStore interface {
	AcquireLease(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	ReleaseLease(ctx context.Context, key, token string) error
}

// LeaseLocker takes a local lock first and then a store lease, so contention on the store only
// comes from other processes. When the store fails it keeps the local lock and carries on.
type LeaseLocker struct {
	store  LeaseStore
	local  *KeyedMutex
	ttl    time.Duration
	retry  time.Duration
	logger *zap.Logger

	warnedFallback atomic.Bool
}

func NewLeaseLocker(store LeaseStore, ttl time.Duration, logger *zap.Logger) *LeaseLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &LeaseLocker{
		store:  store,
		local:  NewKeyedMutex(),
		ttl:    ttl,
		retry:  50 * time.Millisecond,
		logger: applog.OrNop(logger),
	}
}

func (l *LeaseLocker) Lock(ctx context.Context, key string) (func(), error) {
	unlockLocal, err := l.local.Lock(ctx, key)
	if err != nil {
		return nil, err
	}
	if l.store == nil {
		return unlockLocal, nil
	}

	deadline := time.Now().Add(l.ttl)
	for {
		token, ok, err := l.store.AcquireLease(ctx, key, l.ttl)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				unlockLocal()
				return nil, ctxErr
			}
			if l.warnedFallback.CompareAndSwap(false, true) {
				l.logger.Warn("lease store unavailable, falling back to local lock", zap.String("key", key), zap.Error(err))
			}
			return unlockLocal, nil
		}
		if ok {
			var once sync.Once
			return func() {
				once.Do(func() {
					ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
					defer cancel()
					if err := l.store.ReleaseLease(ctx, key, token); err != nil {
						l.logger.Warn("lease release failed", zap.String("key", key), zap.Error(err))
					}
					unlockLocal()
				})
			}, nil
		}

		if !time.Now().Before(deadline) {
			unlockLocal()
			return nil, ErrGenerationInProgress
		}

		t := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			t.Stop()
			unlockLocal()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
}

var _ Locker = (*KeyedMutex)(nil)
var _ Locker = (*LeaseLocker)(nil)
