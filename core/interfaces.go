package core

import (
	"context"
	"fmt"
	"time"
)

// =============================================================================
// PanicHandler: Interface for handling task panics
// =============================================================================

// PanicHandler is called when a task panics during execution. The panic is
// already captured into the task's result cell by then; this hook exists for
// logging and crash reporting strategies.
//
// Implementations should be thread-safe as they may be called concurrently.
type PanicHandler interface {
	// HandlePanic is called when a task panics.
	//
	// Parameters:
	// - ctx: The worker context of the panicked task
	// - poolName: The name of the pool where the panic occurred
	// - workerIndex: The 0-based slot of the worker that ran the task
	// - panicInfo: The panic value recovered from the task
	// - stackTrace: The stack trace at the time of panic
	HandlePanic(ctx context.Context, poolName string, workerIndex int, panicInfo any, stackTrace []byte)
}

// DefaultPanicHandler provides a basic panic handler that logs to stdout.
type DefaultPanicHandler struct{}

// HandlePanic prints panic information to stdout.
func (h *DefaultPanicHandler) HandlePanic(ctx context.Context, poolName string, workerIndex int, panicInfo any, stackTrace []byte) {
	fmt.Printf("[Worker %d @ %s] Panic: %v\nStack trace:\n%s",
		workerIndex, poolName, panicInfo, stackTrace)
}

// =============================================================================
// Metrics: Interface for observability and monitoring
// =============================================================================

// Metrics defines the interface for collecting pool execution metrics.
// Implementations can send metrics to monitoring systems (Prometheus, StatsD, etc.).
//
// Methods should be non-blocking and fast to avoid impacting task execution
// performance.
type Metrics interface {
	// RecordTaskDuration records how long a task took to execute.
	RecordTaskDuration(poolName string, duration time.Duration)

	// RecordTaskPanic records that a task panicked during execution.
	RecordTaskPanic(poolName string, panicInfo any)

	// RecordQueueDepth records the current pending-queue depth.
	RecordQueueDepth(poolName string, depth int)

	// RecordTaskRejected records that a submission was rejected.
	//
	// Parameters:
	// - poolName: The name of the pool
	// - reason: Why the task was rejected ("full", "shutdown", ...)
	RecordTaskRejected(poolName string, reason string)
}

// NilMetrics provides a no-op metrics implementation that does nothing.
// This is the default when no metrics interface is provided.
type NilMetrics struct{}

// RecordTaskDuration is a no-op.
func (m *NilMetrics) RecordTaskDuration(poolName string, duration time.Duration) {
}

// RecordTaskPanic is a no-op.
func (m *NilMetrics) RecordTaskPanic(poolName string, panicInfo any) {
}

// RecordQueueDepth is a no-op.
func (m *NilMetrics) RecordQueueDepth(poolName string, depth int) {
}

// RecordTaskRejected is a no-op.
func (m *NilMetrics) RecordTaskRejected(poolName string, reason string) {
}

// =============================================================================
// Config: Configuration for ThreadPool
// =============================================================================

// Config holds optional collaborators for a ThreadPool. All fields are
// optional; nil fields fall back to the defaults below.
type Config struct {
	// Name labels the pool in logs, metrics and stats. Defaults to "taskpool".
	Name string

	// PanicHandler is called when a task panics. Defaults to DefaultPanicHandler.
	PanicHandler PanicHandler

	// Metrics is called to record execution metrics. Defaults to NilMetrics.
	Metrics Metrics

	// Logger receives lifecycle events. Defaults to NoOpLogger.
	Logger Logger

	// HistoryCapacity bounds the execution-history ring buffer.
	// Defaults to defaultHistoryCapacity.
	HistoryCapacity int
}

// DefaultConfig returns a config with default collaborators.
func DefaultConfig() *Config {
	return &Config{
		Name:         "taskpool",
		PanicHandler: &DefaultPanicHandler{},
		Metrics:      &NilMetrics{},
		Logger:       NewNoOpLogger(),
	}
}
