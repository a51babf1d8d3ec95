package core_test

import (
	"context"
	"testing"
	"time"

	core "github.com/gul-cpp/taskpool/core"
)

// TestSubmitDelayed_NoEarlyStart verifies the earliest-start contract
// Given: An otherwise idle pool
// When: A task is submitted with a 100ms delay
// Then: It does not start before the delay has elapsed
func TestSubmitDelayed_NoEarlyStart(t *testing.T) {
	// Arrange
	pool := newTestPool(t, 2, 16)
	const delay = 100 * time.Millisecond

	submittedAt := time.Now()
	handle, err := core.SubmitDelayed(pool, func(ctx context.Context) (time.Time, error) {
		return time.Now(), nil
	}, delay)
	if err != nil {
		t.Fatalf("SubmitDelayed failed: %v", err)
	}

	// Act
	startedAt, err := handle.Result(context.Background())
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}

	// Assert - Task started no earlier than submittedAt + delay
	if startedAt.Before(submittedAt.Add(delay)) {
		t.Errorf("task started %v after submit, want >= %v", startedAt.Sub(submittedAt), delay)
	}
}

// TestSubmitDelayed_IdleWorkersWakeUp verifies no starvation on an idle pool
// Given: A pool with no other work at all
// When: A delayed task becomes eligible
// Then: An idle worker picks it up promptly without an unrelated wake-up
func TestSubmitDelayed_IdleWorkersWakeUp(t *testing.T) {
	pool := newTestPool(t, 1, 8)
	const delay = 50 * time.Millisecond

	handle, err := core.SubmitDelayed(pool, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, nil
	}, delay)
	if err != nil {
		t.Fatalf("SubmitDelayed failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := handle.Result(ctx); err != nil {
		t.Fatalf("delayed task never ran: %v", err)
	}
}

// TestSubmitDelayed_EligibleTasksRunFirst verifies overtaking
// Given: A single-worker pool with a far-future task at the head of the queue
// When: An undelayed task is submitted afterwards
// Then: The undelayed task runs while the scheduled one keeps waiting
func TestSubmitDelayed_EligibleTasksRunFirst(t *testing.T) {
	// Arrange
	pool := newTestPool(t, 1, 8)

	far, err := core.SubmitDelayedNamed(pool, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, nil
	}, time.Hour, "far-future")
	if err != nil {
		t.Fatalf("SubmitDelayedNamed failed: %v", err)
	}

	// Act
	prompt := mustSubmit(t, pool, func(ctx context.Context) (int, error) {
		return 1, nil
	})

	// Assert - Prompt task completes
	if got, err := prompt.Result(context.Background()); err != nil || got != 1 {
		t.Fatalf("prompt Result() = %d, %v, want 1, nil", got, err)
	}

	// Assert - Far-future task still pending and counting toward capacity
	state, err := far.State()
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	if state != core.StatePending {
		t.Errorf("far-future State() = %v, want %v", state, core.StatePending)
	}
	if pool.CountPending() != 1 {
		t.Errorf("CountPending() = %d, want 1", pool.CountPending())
	}
}

// TestSubmitAt_PastTimeRunsImmediately verifies past start times
// Given: A start time already in the past
// When: SubmitAt is used
// Then: The task is eligible immediately
func TestSubmitAt_PastTimeRunsImmediately(t *testing.T) {
	pool := newTestPool(t, 1, 8)

	handle, err := core.SubmitAt(pool, func(ctx context.Context) (int, error) {
		return 9, nil
	}, time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("SubmitAt failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	got, err := handle.Result(ctx)
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if got != 9 {
		t.Errorf("Result() = %d, want 9", got)
	}
}

// TestSubmitDelayed_CancelBeforeStart verifies a scheduled task can be removed
// Given: A task scheduled an hour from now
// When: Its handle cancels it
// Then: The queue slot is freed immediately
func TestSubmitDelayed_CancelBeforeStart(t *testing.T) {
	pool := newTestPool(t, 1, 2)

	handle, err := core.SubmitDelayed(pool, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, nil
	}, time.Hour)
	if err != nil {
		t.Fatalf("SubmitDelayed failed: %v", err)
	}
	if pool.CountPending() != 1 {
		t.Fatalf("CountPending() = %d, want 1", pool.CountPending())
	}

	removed, err := handle.Cancel()
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if !removed {
		t.Error("Cancel() = false, want true")
	}
	if pool.CountPending() != 0 {
		t.Errorf("CountPending() after cancel = %d, want 0", pool.CountPending())
	}
}
