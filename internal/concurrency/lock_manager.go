// Package concurrency provides in-process keyed locking.
package concurrency

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// LockManager hands out one exclusive lock per key. Waiting honours context
// cancellation.
type LockManager struct {
	locks sync.Map // key -> *semaphore.Weighted
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

func (lm *LockManager) lock(key string) *semaphore.Weighted {
	sem, _ := lm.locks.LoadOrStore(key, semaphore.NewWeighted(1))
	return sem.(*semaphore.Weighted)
}

// WithLock runs fn while holding the lock for key. It returns ctx.Err() if
// the context ends before the lock is free.
func (lm *LockManager) WithLock(ctx context.Context, key string, fn func() error) error {
	sem := lm.lock(key)
	if err := sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer sem.Release(1)
	return fn()
}

// TryWithLock runs fn only if the lock for key is free and reports whether it ran
func (lm *LockManager) TryWithLock(key string, fn func() error) (bool, error) {
	sem := lm.lock(key)
	if !sem.TryAcquire(1) {
		return false, nil
	}
	defer sem.Release(1)
	return true, fn()
}
