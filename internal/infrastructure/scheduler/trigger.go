package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// IntervalTrigger submits a fixed set of job kinds every Interval
type IntervalTrigger struct {
	interval  time.Duration
	kinds     []JobKind
	scheduler *Scheduler
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewIntervalTrigger creates a trigger for kinds on scheduler
func NewIntervalTrigger(interval time.Duration, scheduler *Scheduler, logger *zap.Logger, kinds ...JobKind) *IntervalTrigger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntervalTrigger{
		interval:  interval,
		kinds:     kinds,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start begins the loop. The first round runs immediately.
func (t *IntervalTrigger) Start(ctx context.Context) error {
	if t.interval <= 0 {
		return ErrInvalidConfig
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isRunning {
		return nil
	}
	t.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.runLoop(ctx)

	t.logger.Info("Interval trigger started", zap.Duration("interval", t.interval))
	return nil
}

// Stop ends the loop and waits for it to exit
func (t *IntervalTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *IntervalTrigger) runLoop(ctx context.Context) {
	defer t.wg.Done()

	t.fire()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.fire()
		}
	}
}

// fire submits one job per kind. A full queue skips the round for that kind.
func (t *IntervalTrigger) fire() {
	for _, kind := range t.kinds {
		if _, err := t.scheduler.Schedule(kind); err != nil {
			t.logger.Warn("Failed to schedule job",
				zap.String("kind", string(kind)),
				zap.Error(err),
			)
		}
	}
}
