// Package scheduler runs background maintenance jobs on a small worker pool
// with per-job timeouts and delayed retries.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SchedulerConfig struct {
	MaxConcurrentJobs int
	JobTimeout        time.Duration
	RetryAttempts     int
	RetryDelay        time.Duration
	// QueueSize bounds pending jobs; zero means the default.
	QueueSize int
}

func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		MaxConcurrentJobs: 1,
		JobTimeout:        time.Minute,
		RetryAttempts:     3,
		RetryDelay:        30 * time.Second,
		QueueSize:         16,
	}
}

func (c SchedulerConfig) Validate() error {
	switch {
	case c.MaxConcurrentJobs <= 0:
		return fmt.Errorf("%w: max concurrent jobs must be positive", ErrInvalidConfig)
	case c.JobTimeout <= 0:
		return fmt.Errorf("%w: job timeout must be positive", ErrInvalidConfig)
	case c.RetryAttempts < 0:
		return fmt.Errorf("%w: retry attempts cannot be negative", ErrInvalidConfig)
	}
	return nil
}

// Scheduler feeds queued jobs to a fixed set of workers. The queue is closed
// and pending retry timers are dropped on Stop, both under mu, so a submit
// never races the close.
type Scheduler struct {
	cfg  SchedulerConfig
	exec JobExecutor
	log  *zap.Logger

	mu      sync.Mutex
	running bool
	queue   chan *Job
	retries map[uuid.UUID]*time.Timer
	cancel  context.CancelFunc
	workers sync.WaitGroup
}

func NewScheduler(cfg SchedulerConfig, exec JobExecutor, log *zap.Logger) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultSchedulerConfig().QueueSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cfg:     cfg,
		exec:    exec,
		log:     log.Named("scheduler"),
		queue:   make(chan *Job, cfg.QueueSize),
		retries: map[uuid.UUID]*time.Timer{},
	}, nil
}

// Start launches the workers. Calling it on a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true
	s.workers.Add(s.cfg.MaxConcurrentJobs)
	for id := range s.cfg.MaxConcurrentJobs {
		go s.work(ctx, id)
	}

	s.log.Info("Job scheduler started",
		zap.Int("workers", s.cfg.MaxConcurrentJobs),
		zap.Duration("job_timeout", s.cfg.JobTimeout),
	)
	return nil
}

// Stop cancels in-flight jobs and waits for the workers until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	for id, t := range s.retries {
		t.Stop()
		delete(s.retries, id)
	}
	close(s.queue)
	s.cancel()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("Job scheduler stopped")
		return nil
	case <-ctx.Done():
		s.log.Warn("Job scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Schedule queues a fresh job of kind with the configured retry budget.
func (s *Scheduler) Schedule(kind JobKind) (*Job, error) {
	job := NewJob(kind, s.cfg.RetryAttempts)
	if err := s.SubmitJob(job); err != nil {
		return nil, err
	}
	return job, nil
}

// SubmitJob never blocks; a full queue yields ErrJobQueueFull.
func (s *Scheduler) SubmitJob(job *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return ErrSchedulerNotRunning
	}
	select {
	case s.queue <- job:
	default:
		return ErrJobQueueFull
	}
	s.log.Debug("Job queued", zap.Stringer("job_id", job.ID), zap.String("kind", string(job.Kind)))
	return nil
}

func (s *Scheduler) work(ctx context.Context, id int) {
	defer s.workers.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-s.queue:
			if !ok {
				return
			}
			s.run(ctx, job, id)
		}
	}
}

func (s *Scheduler) run(ctx context.Context, job *Job, worker int) {
	log := s.log.With(
		zap.Int("worker_id", worker),
		zap.Stringer("job_id", job.ID),
		zap.String("kind", string(job.Kind)),
	)

	jobCtx, cancel := context.WithTimeout(ctx, s.cfg.JobTimeout)
	defer cancel()

	job.Start()
	err := s.exec.Execute(jobCtx, job)
	if err == nil {
		job.Complete()
		log.Debug("Job completed", zap.Duration("took", job.CompletedAt.Sub(*job.StartedAt)))
		return
	}

	job.Fail(err.Error())
	log.Error("Job failed", zap.Error(err), zap.Int("retry_count", job.RetryCount))
	if job.ShouldRetry() && ctx.Err() == nil {
		s.retryLater(job)
	}
}

// retryLater re-queues job after RetryDelay unless the scheduler stops first.
func (s *Scheduler) retryLater(job *Job) {
	job.PrepareRetry()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.retries[job.ID] = time.AfterFunc(s.cfg.RetryDelay, func() {
		s.mu.Lock()
		delete(s.retries, job.ID)
		s.mu.Unlock()
		if err := s.SubmitJob(job); err != nil {
			s.log.Warn("Retry dropped", zap.Stringer("job_id", job.ID), zap.Error(err))
		}
	})
	s.log.Info("Job retry scheduled",
		zap.Stringer("job_id", job.ID),
		zap.Int("attempt", job.RetryCount),
		zap.Int("max_retries", job.MaxRetries),
		zap.Duration("delay", s.cfg.RetryDelay),
	)
}
