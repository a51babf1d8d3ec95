package core

import (
	"context"
	"fmt"
	"time"
)

// TaskID identifies one submitted task. IDs are assigned sequentially under
// the pool's lock and are never reused by the same pool instance.
type TaskID uint64

func (id TaskID) String() string {
	return fmt.Sprintf("task-%d", id)
}

// TaskFunc is the unit of work. The context carries the owning pool (see
// FromContext) so a task may submit further tasks to its own pool, and the
// worker index (see WorkerIndex). A returned error is delivered through the
// task's handle, never to the worker loop.
type TaskFunc[T any] func(ctx context.Context) (T, error)

// task is the internal queue record. The user callable and its result cell
// are erased into invoke; only id, name and startAt stay inspectable.
// discard settles the result cell with ErrDiscarded when the pool drops the
// task before a worker ever claims it, so waiters are released.
type task struct {
	id      TaskID
	name    string
	startAt time.Time // zero = no restriction, eligible immediately
	invoke  func(ctx context.Context) *PanicError
	discard func()
}

// eligible reports whether the task may start now.
func (t *task) eligible(now time.Time) bool {
	return t.startAt.IsZero() || !t.startAt.After(now)
}

// =============================================================================
// Context Helpers
// =============================================================================

type poolKeyType struct{}
type workerIndexKeyType struct{}

var (
	poolKey        poolKeyType
	workerIndexKey workerIndexKeyType
)

func withPool(ctx context.Context, p *ThreadPool) context.Context {
	return context.WithValue(ctx, poolKey, p)
}

func withWorkerIndex(ctx context.Context, index int) context.Context {
	return context.WithValue(ctx, workerIndexKey, index)
}

// FromContext returns the pool that is executing the current task, or nil if
// the context does not come from a pool worker. Tasks use this to submit
// follow-up work to their own pool.
func FromContext(ctx context.Context) *ThreadPool {
	if v := ctx.Value(poolKey); v != nil {
		return v.(*ThreadPool)
	}
	return nil
}

// WorkerIndex returns the 0-based slot of the worker executing the current
// task. Calling it with a context that does not belong to a worker returns
// ErrNotWorker.
func WorkerIndex(ctx context.Context) (int, error) {
	if v := ctx.Value(workerIndexKey); v != nil {
		return v.(int), nil
	}
	return 0, ErrNotWorker
}
