package core

import (
	"context"
	"runtime/debug"
	"time"
)

// =============================================================================
// Typed Submission
// =============================================================================
//
// Methods cannot carry type parameters, so submission is a family of free
// generic functions over *ThreadPool. All of them funnel into SubmitAtNamed,
// which erases the typed callable and its result cell into the queue record.

// Submit enqueues fn for immediate execution and returns its handle.
// It never blocks: a full queue fails with ErrPoolFull, a shut-down pool
// with ErrShutdown.
func Submit[T any](p *ThreadPool, fn TaskFunc[T]) (*TaskHandle[T], error) {
	return SubmitAtNamed(p, fn, time.Time{}, "")
}

// SubmitNamed is Submit with a name for queue introspection.
func SubmitNamed[T any](p *ThreadPool, fn TaskFunc[T], name string) (*TaskHandle[T], error) {
	return SubmitAtNamed(p, fn, time.Time{}, name)
}

// SubmitDelayed enqueues fn to become eligible after delay. The task counts
// toward capacity for the whole wait.
func SubmitDelayed[T any](p *ThreadPool, fn TaskFunc[T], delay time.Duration) (*TaskHandle[T], error) {
	return SubmitAtNamed(p, fn, time.Now().Add(delay), "")
}

// SubmitDelayedNamed is SubmitDelayed with a name.
func SubmitDelayedNamed[T any](p *ThreadPool, fn TaskFunc[T], delay time.Duration, name string) (*TaskHandle[T], error) {
	return SubmitAtNamed(p, fn, time.Now().Add(delay), name)
}

// SubmitAt enqueues fn to become eligible at startAt. A zero startAt means
// no restriction.
func SubmitAt[T any](p *ThreadPool, fn TaskFunc[T], startAt time.Time) (*TaskHandle[T], error) {
	return SubmitAtNamed(p, fn, startAt, "")
}

// SubmitAtNamed is the full form: earliest start time plus a name. The name
// may be empty; it is only used for introspection and history.
func SubmitAtNamed[T any](p *ThreadPool, fn TaskFunc[T], startAt time.Time, name string) (*TaskHandle[T], error) {
	if fn == nil {
		return nil, ErrNilTask
	}

	res := newResult[T]()

	invoke := func(ctx context.Context) (perr *PanicError) {
		defer func() {
			if r := recover(); r != nil {
				perr = &PanicError{Value: r, Stack: debug.Stack()}
				res.reject(perr)
			}
		}()

		v, err := fn(ctx)
		if err != nil {
			res.reject(err)
		} else {
			res.resolve(v)
		}
		return nil
	}

	discard := func() {
		res.reject(ErrDiscarded)
	}

	id, err := p.enqueue(name, startAt, invoke, discard)
	if err != nil {
		return nil, err
	}
	return newTaskHandle(res, id, p), nil
}
