// Package schedule provides recurring job scheduling on top of a thread pool.
// It uses the robfig/cron/v3 library for cron expression parsing and firing.
// Each time a job fires, it is submitted to the pool as a named task, so job
// bodies run on pool workers and show up in the pool's execution history.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gul-cpp/taskpool/core"
	"github.com/robfig/cron/v3"
)

// JobFunc is the body of a scheduled job. It runs on a pool worker.
type JobFunc func(ctx context.Context) error

// Job is a recurring job registered with a Scheduler.
type Job struct {
	ID   string // unique job identifier, generated when empty
	Spec string // cron expression, e.g. "*/5 * * * * *"
	Name string // task name used for pool submissions
	Run  JobFunc
}

// Scheduler fires cron jobs and submits each firing to a thread pool.
type Scheduler struct {
	cron   *cron.Cron
	pool   *core.ThreadPool
	logger core.Logger
	parser cron.Parser

	mu      sync.RWMutex
	started bool
	jobs    map[string]Job
	entries map[string]cron.EntryID
}

// NewScheduler creates a scheduler that submits job firings to pool.
// Cron expressions use the six-field form with an optional seconds field.
func NewScheduler(pool *core.ThreadPool, logger core.Logger) *Scheduler {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		pool:    pool,
		logger:  logger,
		parser:  cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		jobs:    make(map[string]Job),
		entries: make(map[string]cron.EntryID),
	}
}

// Start begins firing registered jobs. It returns an error when the
// scheduler is already started.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("scheduler already started")
	}
	s.started = true
	s.cron.Start()
	s.logger.Info("scheduler started", core.F("pool", s.pool.Name()))
	return nil
}

// Stop stops firing jobs and waits for in-flight firings to be handed to
// the pool. Tasks already submitted keep running on the pool.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return fmt.Errorf("scheduler not started")
	}
	s.started = false
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped", core.F("pool", s.pool.Name()))
	return nil
}

// IsStarted reports whether the scheduler is currently firing jobs.
func (s *Scheduler) IsStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// AddJob registers a recurring job. Returns the job ID, generating one if
// the job does not carry its own.
func (s *Scheduler) AddJob(job Job) (string, error) {
	if job.Run == nil {
		return "", fmt.Errorf("job %q: %w", job.ID, core.ErrNilTask)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if job.ID == "" {
		job.ID = generateJobID()
	}
	if job.Name == "" {
		job.Name = job.ID
	}

	if old, ok := s.entries[job.ID]; ok {
		s.cron.Remove(old)
	}

	entryID, err := s.cron.AddFunc(job.Spec, func() {
		s.fire(job)
	})
	if err != nil {
		return "", fmt.Errorf("invalid cron expression: %w", err)
	}

	s.jobs[job.ID] = job
	s.entries[job.ID] = entryID

	s.logger.Info("job added",
		core.F("job_id", job.ID),
		core.F("spec", job.Spec))
	return job.ID, nil
}

// RemoveJob unregisters a job. Firings already submitted keep running.
func (s *Scheduler) RemoveJob(jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[jobID]; !ok {
		return fmt.Errorf("job not found: %s", jobID)
	}
	if entryID, ok := s.entries[jobID]; ok {
		s.cron.Remove(entryID)
		delete(s.entries, jobID)
	}
	delete(s.jobs, jobID)

	s.logger.Info("job removed", core.F("job_id", jobID))
	return nil
}

// ListJobs returns all registered jobs.
func (s *Scheduler) ListJobs() []Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, job)
	}
	return jobs
}

// GetJob retrieves a registered job by ID.
func (s *Scheduler) GetJob(jobID string) (Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return Job{}, fmt.Errorf("job not found: %s", jobID)
	}
	return job, nil
}

// NextRun returns the next firing time of a job, or the zero time when the
// job is unknown or the scheduler has not been started.
func (s *Scheduler) NextRun(jobID string) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entryID, ok := s.entries[jobID]
	if !ok {
		return time.Time{}
	}
	return s.cron.Entry(entryID).Next
}

// ValidateSpec checks a cron expression without registering a job.
func (s *Scheduler) ValidateSpec(spec string) error {
	if _, err := s.parser.Parse(spec); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}

// fire submits one firing of a job to the pool. Rejections (pool full or
// shutting down) are logged and the firing is dropped. Nothing awaits the
// task's handle, so job failures are logged from the task body itself.
func (s *Scheduler) fire(job Job) {
	_, err := core.SubmitNamed(s.pool, func(ctx context.Context) (struct{}, error) {
		if err := job.Run(ctx); err != nil {
			s.logger.Error("job failed",
				core.F("job_id", job.ID),
				core.F("task_name", job.Name),
				core.F("error", err))
			return struct{}{}, err
		}
		return struct{}{}, nil
	}, job.Name)
	if err != nil {
		s.logger.Error("job submission rejected",
			core.F("job_id", job.ID),
			core.F("pool", s.pool.Name()),
			core.F("error", err))
		return
	}
	s.logger.Debug("job submitted",
		core.F("job_id", job.ID),
		core.F("task_name", job.Name))
}

func generateJobID() string {
	return fmt.Sprintf("job_%d", time.Now().UnixNano())
}
