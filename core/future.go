package core

import (
	"context"
	"sync"
)

// result is a single-assignment cell carrying either a value or an error
// across goroutines. A worker settles it exactly once; any number of readers
// may poll ready() or block in await().
type result[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

func newResult[T any]() *result[T] {
	return &result[T]{done: make(chan struct{})}
}

func (r *result[T]) resolve(v T) {
	r.once.Do(func() {
		r.value = v
		close(r.done)
	})
}

func (r *result[T]) reject(err error) {
	r.once.Do(func() {
		r.err = err
		close(r.done)
	})
}

// failure returns the settled error, or nil while unsettled or on success.
func (r *result[T]) failure() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

func (r *result[T]) ready() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// await blocks until the cell is settled or ctx is done.
func (r *result[T]) await(ctx context.Context) (T, error) {
	select {
	case <-r.done:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
