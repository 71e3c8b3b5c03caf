package core

import (
	"context"
	"net/http"
	"sync"
)

// Response is the result envelope of a single-response call: the decoded
// payload plus the response headers. Header lookups are case-insensitive.
type Response[T any] struct {
	Result T
	Header http.Header
}

// Future is a result cell that settles exactly once.
//
// Resolve may be called from any goroutine; only the first call has an
// effect. Readers block on Done or Await.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// NewFuture returns an unsettled future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolve settles the future. It reports false if the future was already settled,
// in which case v and err are discarded.
func (f *Future[T]) Resolve(v T, err error) bool {
	settled := false
	f.once.Do(func() {
		f.value = v
		f.err = err
		settled = true
		close(f.done)
	})
	return settled
}

// Done is closed once the future settles.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future settles or ctx is done.
// Cancelling ctx does not cancel the underlying call.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Peek returns the settled value without blocking. ok is false if the future
// has not settled yet.
func (f *Future[T]) Peek() (v T, ok bool, err error) {
	select {
	case <-f.done:
		return f.value, true, f.err
	default:
		return v, false, nil
	}
}
