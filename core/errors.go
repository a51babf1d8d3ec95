package core

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by pool construction, submission, and handles.
// Callers should match them with errors.Is.
var (
	// ErrThreadCount is returned by NewThreadPool when the requested worker
	// count is zero, negative, or above MaxThreads.
	ErrThreadCount = errors.New("taskpool: thread count out of range")

	// ErrCapacity is returned by NewThreadPool when the requested queue
	// capacity is zero, negative, or above MaxCapacity.
	ErrCapacity = errors.New("taskpool: capacity out of range")

	// ErrPoolFull is returned by Submit when the pending queue already holds
	// Capacity() tasks. Submission never blocks; callers handle backpressure.
	ErrPoolFull = errors.New("taskpool: pending queue full")

	// ErrShutdown is returned by Submit after Shutdown has been requested.
	ErrShutdown = errors.New("taskpool: pool shut down")

	// ErrPoolGone is returned by handle operations whose pool has been
	// garbage collected. It is distinct from ErrInvalidHandle: the handle
	// itself is fine, the pool behind it is not.
	ErrPoolGone = errors.New("taskpool: pool no longer exists")

	// ErrInvalidHandle is returned by handle operations on a zero-value
	// handle or on a handle whose result was discarded by Cancel.
	ErrInvalidHandle = errors.New("taskpool: handle has no result")

	// ErrDiscarded settles the result cell of a task that the pool dropped
	// before execution (Shutdown, CancelPending, CancelAllPending). Result
	// on such a handle fails with it instead of waiting forever.
	ErrDiscarded = errors.New("taskpool: task discarded before execution")

	// ErrNilTask is returned by Submit when the task function is nil.
	ErrNilTask = errors.New("taskpool: nil task submitted")

	// ErrNotWorker is returned by WorkerIndex when the context does not
	// belong to a pool worker.
	ErrNotWorker = errors.New("taskpool: not called from a worker")
)

// PanicError carries a panic recovered from a task body. It is stored in the
// task's result cell and re-surfaced by TaskHandle.Result; the worker that
// ran the task keeps servicing the queue.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("taskpool: task panicked: %v", e.Value)
}
