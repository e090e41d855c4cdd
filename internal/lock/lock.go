// Package lock serializes allocation runs.
package lock

import (
	"context"
	"errors"
	"sync"
)

// ErrLocked is returned when another holder owns the lock
var ErrLocked = errors.New("lock is held by another run")

// Locker guards a critical section. The release func is safe to call more
// than once.
type Locker interface {
	TryLock(ctx context.Context) (release func(), err error)
}

// LocalLocker is a process-local lock for single instance deployments
type LocalLocker struct {
	mu sync.Mutex
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{}
}

func (l *LocalLocker) TryLock(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !l.mu.TryLock() {
		return nil, ErrLocked
	}

	var once sync.Once
	return func() {
		once.Do(l.mu.Unlock)
	}, nil
}
