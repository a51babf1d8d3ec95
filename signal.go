package taskpool

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ShutdownOnSignal shuts the pool down when the process receives one of the
// given signals (default: SIGINT, SIGQUIT, SIGTERM). Pending tasks are
// discarded and running tasks finish, exactly as with Shutdown.
//
// The returned stop function unregisters the signal handler; call it when
// the pool is shut down by other means.
func ShutdownOnSignal(p *ThreadPool, signals ...os.Signal) (stop func()) {
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM}
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, signals...)

	done := make(chan struct{})
	go func() {
		select {
		case <-ch:
			p.Shutdown()
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
		})
	}
}
