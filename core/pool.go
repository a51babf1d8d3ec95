package core

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Hard limits on pool configuration. Exceeding either at construction is a
// configuration error, not a silent clamp.
const (
	DefaultCapacity = 200
	MaxThreads      = 10_000
	MaxCapacity     = 10_000_000
)

type runningTask struct {
	id   TaskID
	name string
}

// ThreadPool executes submitted tasks on a fixed set of worker goroutines.
//
// All queue bookkeeping (pending queue, running set, id counter, shutdown
// flag) lives under one mutex; task bodies always run outside that lock, so
// tasks may freely call back into their own pool (submit, query, cancel)
// without deadlocking.
//
// Construct pools only through NewThreadPool (or the taskpool facade); the
// zero value is not usable.
type ThreadPool struct {
	name     string
	threads  int
	capacity int

	mu                sync.Mutex
	pending           pendingQueue
	running           []runningTask
	nextID            TaskID
	shutdownRequested bool

	signal   chan struct{}
	quit     chan struct{}
	joined   chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once

	panicHandler PanicHandler
	metrics      Metrics
	logger       Logger
	history      executionHistory
}

// NewThreadPool creates a pool with the given number of worker goroutines
// and pending-queue capacity, and starts the workers immediately.
//
// threads must be in [1, MaxThreads] and capacity in [1, MaxCapacity];
// violations fail here with ErrThreadCount / ErrCapacity and no pool is
// produced. config may be nil; nil fields fall back to DefaultConfig.
func NewThreadPool(threads, capacity int, config *Config) (*ThreadPool, error) {
	if threads < 1 || threads > MaxThreads {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrThreadCount, threads, MaxThreads)
	}
	if capacity < 1 || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrCapacity, capacity, MaxCapacity)
	}

	p := &ThreadPool{
		name:     "taskpool",
		threads:  threads,
		capacity: capacity,
		pending:  newPendingQueue(),
		signal:   make(chan struct{}, threads*2),
		quit:     make(chan struct{}),
		joined:   make(chan struct{}),
	}

	historyCapacity := 0
	if config != nil {
		if config.Name != "" {
			p.name = config.Name
		}
		p.panicHandler = config.PanicHandler
		p.metrics = config.Metrics
		p.logger = config.Logger
		historyCapacity = config.HistoryCapacity
	}

	// Use defaults if not provided
	if p.panicHandler == nil {
		p.panicHandler = &DefaultPanicHandler{}
	}
	if p.metrics == nil {
		p.metrics = &NilMetrics{}
	}
	if p.logger == nil {
		p.logger = NewNoOpLogger()
	}
	p.history = newExecutionHistory(historyCapacity)

	for i := 0; i < threads; i++ {
		p.wg.Add(1)
		go p.workerLoop(i)
	}

	p.logger.Debug("pool started", F("pool", p.name), F("threads", threads), F("capacity", capacity))
	return p, nil
}

// =============================================================================
// Submission (internal; the typed Submit functions build the invoke closure)
// =============================================================================

// enqueue appends a type-erased task record and returns its id. It never
// blocks: a full queue fails with ErrPoolFull, a shut-down pool with
// ErrShutdown. Safe to call from inside a running task.
func (p *ThreadPool) enqueue(name string, startAt time.Time, invoke func(context.Context) *PanicError, discard func()) (TaskID, error) {
	p.mu.Lock()
	if p.shutdownRequested {
		p.mu.Unlock()
		p.metrics.RecordTaskRejected(p.name, "shutdown")
		return 0, ErrShutdown
	}
	if p.pending.len() >= p.capacity {
		p.mu.Unlock()
		p.metrics.RecordTaskRejected(p.name, "full")
		return 0, ErrPoolFull
	}

	id := p.nextID
	p.nextID++
	p.pending.push(&task{id: id, name: name, startAt: startAt, invoke: invoke, discard: discard})
	depth := p.pending.len()
	p.mu.Unlock()

	p.metrics.RecordQueueDepth(p.name, depth)

	select {
	case p.signal <- struct{}{}:
	default:
		// Signal channel full; enough wake tokens are already pending.
	}

	return id, nil
}

// =============================================================================
// Worker Loop
// =============================================================================

// claim takes the first eligible pending task and moves it into the running
// set under the lock. When nothing is eligible it returns the wait until the
// nearest scheduled start (0 = wait indefinitely). stop is true once
// shutdown has been requested.
func (p *ThreadPool) claim() (t *task, wait time.Duration, stop bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.shutdownRequested {
		return nil, 0, true
	}

	t, wait = p.pending.takeEligible(time.Now())
	if t != nil {
		p.running = append(p.running, runningTask{id: t.id, name: t.name})
		return t, 0, false
	}
	return nil, wait, false
}

func (p *ThreadPool) workerLoop(index int) {
	defer p.wg.Done()

	ctx := withWorkerIndex(withPool(context.Background(), p), index)

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		t, wait, stop := p.claim()
		if stop {
			return
		}
		if t != nil {
			p.runTask(ctx, index, t)
			continue
		}

		if wait > 0 {
			// Pending tasks exist but none is eligible yet; sleep no longer
			// than the nearest scheduled start.
			timer.Reset(wait)
			select {
			case <-p.quit:
				return
			case <-timer.C:
			case <-p.signal:
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
		} else {
			select {
			case <-p.quit:
				return
			case <-p.signal:
			}
		}
	}
}

// runTask executes one claimed task outside the pool lock. invoke settles the
// task's result cell itself (value, error, or captured panic); the worker
// only handles bookkeeping and observability afterwards.
func (p *ThreadPool) runTask(ctx context.Context, index int, t *task) {
	startedAt := time.Now()
	perr := t.invoke(ctx)
	finishedAt := time.Now()

	p.mu.Lock()
	for i, r := range p.running {
		if r.id == t.id {
			p.running[i] = p.running[len(p.running)-1]
			p.running = p.running[:len(p.running)-1]
			break
		}
	}
	p.mu.Unlock()

	p.history.Add(TaskExecutionRecord{
		TaskID:      t.id,
		Name:        t.name,
		WorkerIndex: index,
		StartedAt:   startedAt,
		FinishedAt:  finishedAt,
		Duration:    finishedAt.Sub(startedAt),
		Panicked:    perr != nil,
	})
	p.metrics.RecordTaskDuration(p.name, finishedAt.Sub(startedAt))

	if perr != nil {
		p.metrics.RecordTaskPanic(p.name, perr.Value)
		p.panicHandler.HandlePanic(ctx, p.name, index, perr.Value, perr.Stack)
	}
}

// =============================================================================
// Lifecycle
// =============================================================================

// Shutdown stops the pool: no new tasks are accepted, still-pending tasks are
// discarded (their handles observe the canceled state and their Result fails
// with ErrDiscarded), tasks already running finish normally, and all workers
// are joined before Shutdown returns.
// Safe to call more than once; every caller blocks until the join completes.
func (p *ThreadPool) Shutdown() {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		p.shutdownRequested = true
		discarded := p.pending.clear()
		p.mu.Unlock()

		close(p.quit)
		p.wg.Wait()

		p.metrics.RecordQueueDepth(p.name, 0)
		p.logger.Info("pool shut down", F("pool", p.name), F("discarded", discarded))
		close(p.joined)
	})
	<-p.joined
}

// IsShutdownRequested reports whether Shutdown has been called.
func (p *ThreadPool) IsShutdownRequested() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shutdownRequested
}

// =============================================================================
// Cancellation
// =============================================================================

// CancelPending removes the task with the given id from the pending queue,
// reporting whether a removal happened. A task that a worker has already
// claimed runs to completion; there is no preemption.
func (p *ThreadPool) CancelPending(id TaskID) bool {
	p.mu.Lock()
	removed := p.pending.removeByID(id)
	depth := p.pending.len()
	p.mu.Unlock()

	if removed {
		p.metrics.RecordQueueDepth(p.name, depth)
	}
	return removed
}

// CancelAllPending discards every pending task, returning how many were
// removed. Running tasks are unaffected.
func (p *ThreadPool) CancelAllPending() int {
	p.mu.Lock()
	n := p.pending.clear()
	p.mu.Unlock()

	if n > 0 {
		p.metrics.RecordQueueDepth(p.name, 0)
	}
	return n
}

// =============================================================================
// Introspection
// =============================================================================

// Name returns the pool's configured name.
func (p *ThreadPool) Name() string {
	return p.name
}

// CountThreads returns the fixed number of worker goroutines.
func (p *ThreadPool) CountThreads() int {
	return p.threads
}

// Capacity returns the fixed maximum length of the pending queue.
func (p *ThreadPool) Capacity() int {
	return p.capacity
}

// CountPending returns the number of tasks waiting in the queue, including
// tasks scheduled for a future start time.
func (p *ThreadPool) CountPending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending.len()
}

// CountRunning returns the number of tasks currently executing.
func (p *ThreadPool) CountRunning() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.running)
}

// IsFull reports whether the pending queue is at capacity, i.e. whether the
// next Submit would fail with ErrPoolFull.
func (p *ThreadPool) IsFull() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending.len() >= p.capacity
}

// IsIdle reports whether the pool has neither pending nor running tasks.
func (p *ThreadPool) IsIdle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending.len() == 0 && len(p.running) == 0
}

// PendingTaskNames returns a snapshot of the names of queued tasks in
// insertion order. The snapshot does not track later modifications.
func (p *ThreadPool) PendingTaskNames() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending.names()
}

// RunningTaskNames returns a snapshot of the names of currently executing
// tasks.
func (p *ThreadPool) RunningTaskNames() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.running))
	for i, r := range p.running {
		out[i] = r.name
	}
	return out
}

// Stats returns a consistent snapshot for monitoring.
func (p *ThreadPool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return PoolStats{
		Name:              p.name,
		Threads:           p.threads,
		Capacity:          p.capacity,
		Pending:           p.pending.len(),
		Running:           len(p.running),
		ShutdownRequested: p.shutdownRequested,
	}
}

// RecentExecutions returns up to limit recently finished tasks, newest
// first. limit <= 0 returns everything retained.
func (p *ThreadPool) RecentExecutions(limit int) []TaskExecutionRecord {
	return p.history.Recent(limit)
}

// LastExecution returns the most recently finished task, if any.
func (p *ThreadPool) LastExecution() (TaskExecutionRecord, bool) {
	return p.history.Last()
}

// taskState reports what the pool itself knows about id: pending, running,
// or unknown (completed, canceled, or never submitted here). Handles combine
// this with their result cell to disambiguate the unknown case.
func (p *ThreadPool) taskState(id TaskID) TaskState {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pending.contains(id) {
		return StatePending
	}
	for _, r := range p.running {
		if r.id == id {
			return StateRunning
		}
	}
	return StateUnknown
}
