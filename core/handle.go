package core

import (
	"context"
	"errors"
	"weak"
)

// TaskHandle is the client-facing view of one submitted task: a result cell
// plus a weak reference to the pool. The weak reference means outstanding
// handles never keep a pool alive; once the pool has been garbage collected,
// pool-touching operations fail with ErrPoolGone instead of dangling.
//
// The zero value is an invalid handle: it has no result and is not
// associated with any pool.
type TaskHandle[T any] struct {
	res      *result[T]
	id       TaskID
	pool     weak.Pointer[ThreadPool]
	canceled bool
}

func newTaskHandle[T any](res *result[T], id TaskID, p *ThreadPool) *TaskHandle[T] {
	return &TaskHandle[T]{res: res, id: id, pool: weak.Make(p)}
}

// ID returns the task's pool-unique id.
func (h *TaskHandle[T]) ID() TaskID {
	return h.id
}

// IsComplete reports whether the result cell holds a value or an error. It
// never talks to the pool, so it stays cheap and works even after the pool
// is gone. Zero-value handles and handles voided by Cancel report false;
// note a pool-discarded task's cell settles with ErrDiscarded and therefore
// reports true here (use State to tell the cases apart).
func (h *TaskHandle[T]) IsComplete() bool {
	return h.res != nil && h.res.ready()
}

// State consults the pool for whether the task is still pending or currently
// running. When the pool no longer tracks the id, the result cell
// disambiguates: ready means complete, otherwise the task was canceled (or
// discarded at shutdown).
//
// A zero-value handle fails with ErrInvalidHandle; a handle whose pool has
// been collected fails with ErrPoolGone.
func (h *TaskHandle[T]) State() (TaskState, error) {
	if h.res == nil && !h.canceled {
		return StateUnknown, ErrInvalidHandle
	}

	p := h.pool.Value()
	if p == nil {
		return StateUnknown, ErrPoolGone
	}

	switch s := p.taskState(h.id); s {
	case StatePending, StateRunning:
		return s, nil
	}

	// A cell settled with ErrDiscarded marks a task the pool dropped before
	// execution, which reads as canceled, not complete.
	if h.IsComplete() && !errors.Is(h.res.failure(), ErrDiscarded) {
		return StateComplete, nil
	}
	return StateCanceled, nil
}

// Cancel asks the pool to drop the task from the pending queue and reports
// whether a removal happened (false when the task already started, already
// finished, or was never queued here).
//
// Regardless of the pool-side outcome the handle discards its result cell:
// canceling means abandoning interest in the result, so a later Result fails
// with ErrInvalidHandle even if the task still ran.
func (h *TaskHandle[T]) Cancel() (bool, error) {
	if h.res == nil && !h.canceled {
		return false, ErrInvalidHandle
	}

	h.res = nil
	h.canceled = true

	p := h.pool.Value()
	if p == nil {
		return false, ErrPoolGone
	}
	return p.CancelPending(h.id), nil
}

// Result blocks until the task finishes and returns its value, its error, or
// the *PanicError captured from its body. ctx bounds the wait. Fails
// immediately with ErrInvalidHandle when the handle has no result cell
// (zero value, or after Cancel).
//
// A task the pool dropped before execution (Shutdown, CancelAllPending)
// settles its cell with ErrDiscarded, so waiters are released rather than
// stranded.
func (h *TaskHandle[T]) Result(ctx context.Context) (T, error) {
	if h.res == nil {
		var zero T
		return zero, ErrInvalidHandle
	}
	return h.res.await(ctx)
}
