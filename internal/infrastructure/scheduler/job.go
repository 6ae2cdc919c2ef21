package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSchedulerNotRunning = errors.New("scheduler is not running")
	ErrJobQueueFull        = errors.New("job queue is full")
	ErrUnknownJobKind      = errors.New("unknown job kind")
	ErrInvalidConfig       = errors.New("invalid scheduler configuration")
)

type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// JobKind selects what an executor does with a job.
type JobKind string

// JobKindLowStockScan logs every item at or below its low stock threshold.
const JobKindLowStockScan JobKind = "LOW_STOCK_SCAN"

// Job is a single run of some JobKind. A failed job may be re-queued up to
// MaxRetries times; RetryCount counts the re-queues so far.
type Job struct {
	ID          uuid.UUID
	Kind        JobKind
	Status      JobStatus
	Error       string
	StartedAt   *time.Time
	CompletedAt *time.Time
	RetryCount  int
	MaxRetries  int
}

func NewJob(kind JobKind, maxRetries int) *Job {
	return &Job{ID: uuid.New(), Kind: kind, Status: JobStatusPending, MaxRetries: maxRetries}
}

func stamp() *time.Time {
	now := time.Now()
	return &now
}

func (j *Job) Start() {
	j.Status, j.StartedAt, j.Error = JobStatusRunning, stamp(), ""
}

func (j *Job) Complete() {
	j.Status, j.CompletedAt = JobStatusSuccess, stamp()
}

func (j *Job) Fail(reason string) {
	j.Status, j.CompletedAt, j.Error = JobStatusFailed, stamp(), reason
}

func (j *Job) ShouldRetry() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// PrepareRetry puts a failed job back to pending and counts the attempt.
func (j *Job) PrepareRetry() {
	j.RetryCount++
	j.Status, j.Error = JobStatusPending, ""
}

// JobExecutor does the work behind a job. Returning an error fails the run.
type JobExecutor interface {
	Execute(ctx context.Context, job *Job) error
}

type JobExecutorFunc func(ctx context.Context, job *Job) error

func (f JobExecutorFunc) Execute(ctx context.Context, job *Job) error { return f(ctx, job) }
