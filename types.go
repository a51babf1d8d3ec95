package taskpool

import "github.com/gul-cpp/taskpool/core"

// Re-export commonly used types from core package for convenience.
// This allows users to import only the taskpool package for most use cases.

// ThreadPool executes tasks on a fixed set of workers over a bounded queue.
type ThreadPool = core.ThreadPool

// TaskHandle is the per-task object used to query, cancel, and await.
type TaskHandle[T any] = core.TaskHandle[T]

// TaskFunc is the unit of work.
type TaskFunc[T any] = core.TaskFunc[T]

// TaskID identifies one submitted task within its pool.
type TaskID = core.TaskID

// TaskState describes a task's lifecycle position.
type TaskState = core.TaskState

// Config holds optional pool collaborators (name, panic handler, metrics, logger).
type Config = core.Config

// PoolStats is a monitoring snapshot of a pool.
type PoolStats = core.PoolStats

// TaskExecutionRecord is one entry of a pool's execution history.
type TaskExecutionRecord = core.TaskExecutionRecord

// PanicError carries a panic captured from a task body.
type PanicError = core.PanicError

// Task state constants
const (
	StateUnknown  TaskState = core.StateUnknown
	StatePending  TaskState = core.StatePending
	StateRunning  TaskState = core.StateRunning
	StateComplete TaskState = core.StateComplete
	StateCanceled TaskState = core.StateCanceled
)

// Configuration limits
const (
	DefaultCapacity = core.DefaultCapacity
	MaxThreads      = core.MaxThreads
	MaxCapacity     = core.MaxCapacity
)

// Sentinel errors
var (
	ErrThreadCount   = core.ErrThreadCount
	ErrCapacity      = core.ErrCapacity
	ErrPoolFull      = core.ErrPoolFull
	ErrShutdown      = core.ErrShutdown
	ErrPoolGone      = core.ErrPoolGone
	ErrDiscarded     = core.ErrDiscarded
	ErrInvalidHandle = core.ErrInvalidHandle
	ErrNilTask       = core.ErrNilTask
	ErrNotWorker     = core.ErrNotWorker
)

// DefaultConfig returns a Config with default collaborators.
var DefaultConfig = core.DefaultConfig

// FromContext returns the pool executing the current task, for re-entrant
// submission from inside task bodies.
var FromContext = core.FromContext

// WorkerIndex returns the 0-based worker slot of the current task's context.
var WorkerIndex = core.WorkerIndex
