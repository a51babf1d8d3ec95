package core

// TaskState describes where a task is in its lifecycle, as observed through
// the pool and the task's result cell.
type TaskState int

const (
	// StateUnknown means the pool has no record of the task and its result
	// cell gives no answer either (e.g. a zero-value handle).
	StateUnknown TaskState = iota

	// StatePending means the task sits in the pending queue.
	StatePending

	// StateRunning means a worker is currently executing the task.
	StateRunning

	// StateComplete means the task finished and its result is ready.
	StateComplete

	// StateCanceled means the task was removed from the pending queue before
	// it started, or its handle abandoned the result.
	StateCanceled
)

func (s TaskState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateComplete:
		return "complete"
	case StateCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}
