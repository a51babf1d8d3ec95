package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	core "github.com/gul-cpp/taskpool/core"
)

// TestTaskHandle_StateTransitions verifies pending -> running -> complete
// Given: A blocked single-worker pool
// When: A task moves through its lifecycle
// Then: State reports pending, then running, then complete
func TestTaskHandle_StateTransitions(t *testing.T) {
	// Arrange
	pool := newTestPool(t, 1, 8)

	blockGate := make(chan struct{})
	blocker := mustSubmit(t, pool, func(ctx context.Context) (struct{}, error) {
		<-blockGate
		return struct{}{}, nil
	})
	waitFor(t, func() bool { return pool.CountRunning() == 1 })

	taskGate := make(chan struct{})
	handle := mustSubmit(t, pool, func(ctx context.Context) (int, error) {
		<-taskGate
		return 1, nil
	})

	// Assert - Pending while the worker is busy
	state, err := handle.State()
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	if state != core.StatePending {
		t.Errorf("State() = %v, want %v", state, core.StatePending)
	}
	if handle.IsComplete() {
		t.Error("IsComplete() while pending = true, want false")
	}

	// Act - Let the worker reach our task
	close(blockGate)
	if _, err := blocker.Result(context.Background()); err != nil {
		t.Fatalf("blocker Result() error = %v", err)
	}
	waitFor(t, func() bool {
		s, err := handle.State()
		return err == nil && s == core.StateRunning
	})

	// Act - Let the task finish
	close(taskGate)
	if _, err := handle.Result(context.Background()); err != nil {
		t.Fatalf("Result() error = %v", err)
	}

	// Assert - Complete
	state, err = handle.State()
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	if state != core.StateComplete {
		t.Errorf("State() = %v, want %v", state, core.StateComplete)
	}
	if !handle.IsComplete() {
		t.Error("IsComplete() after finish = false, want true")
	}
}

// TestTaskHandle_ZeroValue verifies the invalid-handle contract
// Given: A zero-value handle never produced by Submit
// When: Its operations are called
// Then: State, Cancel and Result fail with ErrInvalidHandle; IsComplete is false
func TestTaskHandle_ZeroValue(t *testing.T) {
	var handle core.TaskHandle[int]

	if handle.IsComplete() {
		t.Error("IsComplete() = true, want false")
	}
	if _, err := handle.State(); !errors.Is(err, core.ErrInvalidHandle) {
		t.Errorf("State() error = %v, want ErrInvalidHandle", err)
	}
	if _, err := handle.Cancel(); !errors.Is(err, core.ErrInvalidHandle) {
		t.Errorf("Cancel() error = %v, want ErrInvalidHandle", err)
	}
	if _, err := handle.Result(context.Background()); !errors.Is(err, core.ErrInvalidHandle) {
		t.Errorf("Result() error = %v, want ErrInvalidHandle", err)
	}
}

// TestTaskHandle_CancelPending verifies cancellation of a queued task
// Given: A task stuck behind a blocker on a single-worker pool
// When: Cancel is called
// Then: The task is removed, its state is canceled, and Result fails
func TestTaskHandle_CancelPending(t *testing.T) {
	// Arrange
	pool := newTestPool(t, 1, 8)

	gate := make(chan struct{})
	defer close(gate)
	mustSubmit(t, pool, func(ctx context.Context) (struct{}, error) {
		<-gate
		return struct{}{}, nil
	})
	waitFor(t, func() bool { return pool.CountRunning() == 1 })

	executed := false
	handle := mustSubmit(t, pool, func(ctx context.Context) (int, error) {
		executed = true
		return 1, nil
	})

	// Act
	removed, err := handle.Cancel()
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	// Assert
	if !removed {
		t.Error("Cancel() = false, want true")
	}
	if executed {
		t.Error("canceled task body executed")
	}
	state, err := handle.State()
	if err != nil {
		t.Fatalf("State() after cancel error = %v", err)
	}
	if state != core.StateCanceled {
		t.Errorf("State() = %v, want %v", state, core.StateCanceled)
	}

	// Canceling abandons the result cell for good
	if _, err := handle.Result(context.Background()); !errors.Is(err, core.ErrInvalidHandle) {
		t.Errorf("Result() after cancel error = %v, want ErrInvalidHandle", err)
	}
}

// TestTaskHandle_CancelTooLate verifies cancel on an already-finished task
// Given: A task that has already completed
// When: Cancel is called
// Then: No removal is reported, but the handle still abandons its result
func TestTaskHandle_CancelTooLate(t *testing.T) {
	pool := newTestPool(t, 1, 8)

	handle := mustSubmit(t, pool, func(ctx context.Context) (int, error) {
		return 2, nil
	})
	if _, err := handle.Result(context.Background()); err != nil {
		t.Fatalf("Result() error = %v", err)
	}

	removed, err := handle.Cancel()
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if removed {
		t.Error("Cancel() on finished task = true, want false")
	}
	if _, err := handle.Result(context.Background()); !errors.Is(err, core.ErrInvalidHandle) {
		t.Errorf("Result() after late cancel error = %v, want ErrInvalidHandle", err)
	}
}

// TestTaskHandle_ResultContextCancellation verifies bounded waiting
// Given: A task that never finishes within the wait budget
// When: Result is called with an expiring context
// Then: The wait fails with the context's error, not a hang
func TestTaskHandle_ResultContextCancellation(t *testing.T) {
	pool := newTestPool(t, 1, 8)

	gate := make(chan struct{})
	defer close(gate)
	handle := mustSubmit(t, pool, func(ctx context.Context) (int, error) {
		<-gate
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := handle.Result(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Result() error = %v, want DeadlineExceeded", err)
	}
}

// TestTaskHandle_IDsAreUnique verifies sequential id assignment
// Given: Several submissions to the same pool
// When: Their handles report IDs
// Then: All IDs are distinct
func TestTaskHandle_IDsAreUnique(t *testing.T) {
	pool := newTestPool(t, 2, 32)

	seen := make(map[core.TaskID]bool)
	for i := 0; i < 10; i++ {
		h := mustSubmit(t, pool, func(ctx context.Context) (int, error) {
			return 0, nil
		})
		if seen[h.ID()] {
			t.Fatalf("duplicate TaskID %v", h.ID())
		}
		seen[h.ID()] = true
	}
}
