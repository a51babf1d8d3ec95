// Package taskpool provides a bounded thread pool with scheduled execution,
// cancellation, and per-task handles.
//
// A pool owns a fixed set of worker goroutines and a bounded pending queue.
// Submission returns a typed TaskHandle immediately and never blocks: when
// the queue is full the caller gets ErrPoolFull and handles backpressure
// itself.
//
// # Quick Start
//
// Create a pool through the factory and submit work:
//
//	pool, err := taskpool.MakePool(4) // 4 workers, default capacity
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Shutdown()
//
//	handle, err := taskpool.Submit(pool, func(ctx context.Context) (int, error) {
//		return 6 * 7, nil
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	answer, err := handle.Result(context.Background())
//
// # Key Concepts
//
// TaskHandle: the per-task object returned at submission, used to query
// state, cancel while still pending, and await the result. Handles hold only
// a weak reference to the pool, so an outstanding handle never keeps a pool
// alive; operations on a collected pool fail with ErrPoolGone.
//
// Scheduling: SubmitDelayed and SubmitAt make a task eligible at a later
// time. Scheduled tasks stay in the pending queue (and count toward
// capacity) until their start time arrives or they are canceled. Among
// simultaneously eligible tasks, claim order is FIFO by insertion; with a
// single worker the pool is a strictly ordered serial queue.
//
// Cancellation: cooperative and pending-only. A task that has started runs
// to completion; canceling is a queue-removal operation, not preemption.
//
// # Re-entrancy
//
// The pool never holds its internal lock while a task body runs, so tasks
// may submit further tasks to their own pool:
//
//	taskpool.Submit(pool, func(ctx context.Context) (bool, error) {
//		self := taskpool.FromContext(ctx)
//		_, err := taskpool.SubmitNamed(self, followUp, "follow-up")
//		return err == nil, err
//	})
//
// # Failure Isolation
//
// Errors returned by a task body, and panics recovered from it, are captured
// into the task's result cell and re-surfaced only by Result on its handle.
// A failing task never takes down a worker or affects other tasks.
package taskpool
