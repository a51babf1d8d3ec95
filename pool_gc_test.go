package taskpool_test

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	taskpool "github.com/gul-cpp/taskpool"
)

// TestTaskHandle_GC_PoolCollected verifies handles never keep a pool alive
// Given: A handle for a completed task whose pool has been shut down
// When: The last strong pool reference is dropped and GC runs
// Then: Pool-touching handle operations fail with ErrPoolGone while the
//       cached result stays readable
func TestTaskHandle_GC_PoolCollected(t *testing.T) {
	// Arrange - Create pool and handle inside a scope so the pool reference dies
	var handle *taskpool.TaskHandle[int]

	func() {
		pool, err := taskpool.MakePool(1)
		if err != nil {
			t.Fatalf("MakePool failed: %v", err)
		}

		handle, err = taskpool.Submit(pool, func(ctx context.Context) (int, error) {
			return 21, nil
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if _, err := handle.Result(context.Background()); err != nil {
			t.Fatalf("Result() error = %v", err)
		}

		// Join workers so nothing but this scope references the pool.
		pool.Shutdown()
	}()

	// Act - Force GC until the weak reference clears
	deadline := time.Now().Add(2 * time.Second)
	gone := false
	for time.Now().Before(deadline) {
		runtime.GC()
		if _, err := handle.State(); errors.Is(err, taskpool.ErrPoolGone) {
			gone = true
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	// Assert - Pool-touching operations report the pool as gone
	if !gone {
		t.Fatal("State() never returned ErrPoolGone after pool was dropped")
	}
	if _, err := handle.Cancel(); !errors.Is(err, taskpool.ErrPoolGone) {
		t.Errorf("Cancel() error = %v, want ErrPoolGone", err)
	}

	// Assert - The result cell outlives the pool
	if !handle.IsComplete() {
		t.Error("IsComplete() after pool GC = false, want true")
	}
}

// TestThreadPool_GC_DiscardedPendingCollected verifies shutdown releases task memory
// Given: Pending tasks capturing finalizer-tracked objects behind a blocker
// When: Shutdown discards them and GC runs
// Then: The captured objects are collected
func TestThreadPool_GC_DiscardedPendingCollected(t *testing.T) {
	// Arrange
	pool, err := taskpool.MakePoolWithCapacity(1, 64)
	if err != nil {
		t.Fatalf("MakePoolWithCapacity failed: %v", err)
	}

	const numPending = 20
	collected := make(chan struct{}, numPending)

	func() {
		blocker := make(chan struct{})
		if _, err := taskpool.Submit(pool, func(ctx context.Context) (struct{}, error) {
			<-blocker
			return struct{}{}, nil
		}); err != nil {
			t.Fatalf("Submit blocker failed: %v", err)
		}

		for i := 0; i < numPending; i++ {
			obj := &gcProbe{data: make([]byte, 4096)}
			runtime.SetFinalizer(obj, func(o *gcProbe) {
				collected <- struct{}{}
			})

			if _, err := taskpool.Submit(pool, func(ctx context.Context) (int, error) {
				return len(obj.data), nil
			}); err != nil {
				t.Fatalf("Submit failed: %v", err)
			}
		}

		close(blocker)
		// Act - Shutdown discards everything still pending
		pool.Shutdown()
	}()

	// Force GC
	got := 0
	deadline := time.Now().Add(3 * time.Second)
	for got < numPending && time.Now().Before(deadline) {
		runtime.GC()
		for {
			select {
			case <-collected:
				got++
				continue
			default:
			}
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	// Assert - All captured objects were released
	if got != numPending {
		t.Errorf("objects collected = %d, want %d", got, numPending)
	}
}

type gcProbe struct {
	data []byte
}
