package prometheus

import (
	"context"
	"sync"
	"time"

	"github.com/gul-cpp/taskpool/core"
	prom "github.com/prometheus/client_golang/prometheus"
)

// PoolSnapshotProvider provides current pool stats snapshots.
type PoolSnapshotProvider interface {
	Stats() core.PoolStats
}

// SnapshotPoller periodically exports pool Stats() snapshots into Prometheus gauges.
type SnapshotPoller struct {
	interval time.Duration

	poolsMu sync.RWMutex
	pools   map[string]PoolSnapshotProvider

	poolPending  *prom.GaugeVec
	poolRunning  *prom.GaugeVec
	poolCapacity *prom.GaugeVec
	poolThreads  *prom.GaugeVec
	poolShutdown *prom.GaugeVec

	stateMu sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSnapshotPoller creates a snapshot poller and registers its collectors.
func NewSnapshotPoller(reg prom.Registerer, interval time.Duration) (*SnapshotPoller, error) {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	if interval <= 0 {
		interval = time.Second
	}

	poolPending := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "taskpool",
		Name:      "pool_pending",
		Help:      "Pending tasks per pool.",
	}, []string{"pool"})
	poolRunning := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "taskpool",
		Name:      "pool_running",
		Help:      "Running tasks per pool.",
	}, []string{"pool"})
	poolCapacity := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "taskpool",
		Name:      "pool_capacity",
		Help:      "Pending-queue capacity per pool.",
	}, []string{"pool"})
	poolThreads := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "taskpool",
		Name:      "pool_threads",
		Help:      "Worker count per pool.",
	}, []string{"pool"})
	poolShutdown := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "taskpool",
		Name:      "pool_shutdown_requested",
		Help:      "Pool shutdown state (1=requested, 0=accepting).",
	}, []string{"pool"})

	var err error
	if poolPending, err = registerCollector(reg, poolPending); err != nil {
		return nil, err
	}
	if poolRunning, err = registerCollector(reg, poolRunning); err != nil {
		return nil, err
	}
	if poolCapacity, err = registerCollector(reg, poolCapacity); err != nil {
		return nil, err
	}
	if poolThreads, err = registerCollector(reg, poolThreads); err != nil {
		return nil, err
	}
	if poolShutdown, err = registerCollector(reg, poolShutdown); err != nil {
		return nil, err
	}

	return &SnapshotPoller{
		interval:     interval,
		pools:        make(map[string]PoolSnapshotProvider),
		poolPending:  poolPending,
		poolRunning:  poolRunning,
		poolCapacity: poolCapacity,
		poolThreads:  poolThreads,
		poolShutdown: poolShutdown,
	}, nil
}

// AddPool adds or replaces a pool snapshot provider by name.
func (p *SnapshotPoller) AddPool(name string, provider PoolSnapshotProvider) {
	if p == nil || provider == nil {
		return
	}
	name = normalizeLabel(name, "pool")
	p.poolsMu.Lock()
	p.pools[name] = provider
	p.poolsMu.Unlock()
}

// Start begins periodic polling; repeated calls are no-ops.
func (p *SnapshotPoller) Start(ctx context.Context) {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if p.running {
		p.stateMu.Unlock()
		return
	}
	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true
	p.stateMu.Unlock()

	go p.loop(pollCtx)
}

// Stop stops periodic polling; repeated calls are safe.
func (p *SnapshotPoller) Stop() {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if !p.running {
		p.stateMu.Unlock()
		return
	}
	cancel := p.cancel
	done := p.done
	p.stateMu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	p.stateMu.Lock()
	p.running = false
	p.cancel = nil
	p.done = nil
	p.stateMu.Unlock()
}

func (p *SnapshotPoller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.collectOnce()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.collectOnce()
		}
	}
}

func (p *SnapshotPoller) collectOnce() {
	p.poolsMu.RLock()
	defer p.poolsMu.RUnlock()

	for name, provider := range p.pools {
		stats := provider.Stats()
		p.poolPending.WithLabelValues(name).Set(float64(stats.Pending))
		p.poolRunning.WithLabelValues(name).Set(float64(stats.Running))
		p.poolCapacity.WithLabelValues(name).Set(float64(stats.Capacity))
		p.poolThreads.WithLabelValues(name).Set(float64(stats.Threads))
		if stats.ShutdownRequested {
			p.poolShutdown.WithLabelValues(name).Set(1)
		} else {
			p.poolShutdown.WithLabelValues(name).Set(0)
		}
	}
}
