package core

import "time"

// TaskExecutionRecord captures a completed task execution event.
type TaskExecutionRecord struct {
	TaskID      TaskID
	Name        string
	WorkerIndex int
	StartedAt   time.Time
	FinishedAt  time.Time
	Duration    time.Duration
	Panicked    bool
}

// PoolStats represents runtime observability state for a thread pool.
type PoolStats struct {
	Name              string
	Threads           int
	Capacity          int
	Pending           int
	Running           int
	ShutdownRequested bool
}
