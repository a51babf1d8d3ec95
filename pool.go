package taskpool

import (
	"sync"

	"github.com/gul-cpp/taskpool/core"
)

// MakePool creates a pool with threadCount workers and the default pending
// capacity (DefaultCapacity), and starts the workers immediately.
//
// threadCount must be in [1, MaxThreads]; violations fail with
// ErrThreadCount and no pool is produced.
func MakePool(threadCount int) (*ThreadPool, error) {
	return core.NewThreadPool(threadCount, DefaultCapacity, nil)
}

// MakePoolWithCapacity creates a pool with an explicit pending-queue
// capacity in [1, MaxCapacity].
func MakePoolWithCapacity(threadCount, capacity int) (*ThreadPool, error) {
	return core.NewThreadPool(threadCount, capacity, nil)
}

// MakePoolWithConfig additionally wires a name, panic handler, metrics and
// logger into the pool. config may be nil.
func MakePoolWithConfig(threadCount, capacity int, config *Config) (*ThreadPool, error) {
	return core.NewThreadPool(threadCount, capacity, config)
}

// =============================================================================
// Default Pool Helper (Singleton)
// =============================================================================

var (
	defaultPool *ThreadPool
	defaultMu   sync.Mutex
)

// InitDefaultPool initializes the process-wide default pool with the
// specified number of workers and default capacity. Calling it again while
// a default pool exists is a no-op.
func InitDefaultPool(threadCount int) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultPool != nil {
		return nil // Already initialized
	}

	p, err := MakePool(threadCount)
	if err != nil {
		return err
	}
	defaultPool = p
	return nil
}

// DefaultPool returns the default pool instance.
// It panics if InitDefaultPool has not been called.
func DefaultPool() *ThreadPool {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultPool == nil {
		panic("taskpool: default pool not initialized, call InitDefaultPool first")
	}
	return defaultPool
}

// ShutdownDefaultPool shuts the default pool down and clears it.
func ShutdownDefaultPool() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultPool != nil {
		defaultPool.Shutdown()
		defaultPool = nil
	}
}
