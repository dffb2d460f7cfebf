// Package async provides a single-resolution future used as a readiness
// signal.
package async

import (
	"context"
	"sync"
)

// Future holds a value or an error that is set exactly once. Every waiter,
// including ones that arrive after resolution, observes the same outcome.
// The zero value is not usable; create one with NewFuture.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// NewFuture returns an unresolved future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolve sets the outcome. Only the first call has an effect; it reports
// whether this call resolved the future.
func (f *Future[T]) Resolve(v T, err error) bool {
	resolved := false
	f.once.Do(func() {
		f.value, f.err = v, err
		close(f.done)
		resolved = true
	})
	return resolved
}

// Done returns a channel that is closed once the future is resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future is resolved or ctx is done. Giving up on ctx
// only abandons this wait; the future itself is unaffected.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	default:
	}
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// IsResolved reports whether the outcome has been set.
func (f *Future[T]) IsResolved() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Err returns the resolved error without blocking. It is nil while the
// future is pending.
func (f *Future[T]) Err() error {
	if !f.IsResolved() {
		return nil
	}
	return f.err
}

// Resolved returns a future that already holds v and err.
func Resolved[T any](v T, err error) *Future[T] {
	f := NewFuture[T]()
	f.Resolve(v, err)
	return f
}
