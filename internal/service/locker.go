package service

import (
	"context"
	"time"
)

// Locker serialises a critical section across every running instance.
// Release is always safe to call.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

// withLock runs fn holding key. A nil locker runs fn unguarded.
func withLock(ctx context.Context, l Locker, key string, ttl time.Duration, fn func() error) error {
	if l == nil {
		return fn()
	}
	release, err := l.Obtain(ctx, key, ttl)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}
