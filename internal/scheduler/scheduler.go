// Package scheduler runs periodic background jobs on gocron.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/casynetic/WagerBoard_Go/internal/metrics"
)

// Job is a unit of periodic work
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	cron       gocron.Scheduler
	ctx        context.Context
	cancel     context.CancelFunc
	jobTimeout time.Duration
}

// New creates a new scheduler. Each run gets jobTimeout to finish.
func New(jobTimeout time.Duration) (*Scheduler, error) {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:       cron,
		ctx:        ctx,
		cancel:     cancel,
		jobTimeout: jobTimeout,
	}, nil
}

// Every registers job to run at a fixed interval, starting immediately.
// A run that overlaps the previous one is skipped.
func (s *Scheduler) Every(interval time.Duration, job Job) error {
	if interval <= 0 {
		return fmt.Errorf("invalid interval %s for job %s", interval, job.Name())
	}
	_, err := s.cron.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.run, job),
		gocron.WithName(job.Name()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", job.Name(), err)
	}
	slog.Info(LogMsgJobScheduled, "job", job.Name(), "interval", interval)
	return nil
}

func (s *Scheduler) run(job Job) {
	ctx, cancel := context.WithTimeout(s.ctx, s.jobTimeout)
	defer cancel()

	start := time.Now()
	err := job.Run(ctx)
	outcome := metrics.OutcomeSuccess
	switch {
	case errors.Is(err, ErrSkipped):
		outcome = metrics.OutcomeSkipped
		slog.Debug(LogMsgJobSkipped, "job", job.Name())
	case err != nil:
		outcome = metrics.OutcomeFailure
		slog.Warn(LogMsgJobFailed, "job", job.Name(), "error", err, "duration", time.Since(start))
	default:
		slog.Debug(LogMsgJobCompleted, "job", job.Name(), "duration", time.Since(start))
	}
	metrics.SchedulerRuns.WithLabelValues(job.Name(), outcome).Inc()
}

// Start begins executing registered jobs
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels in-flight runs and waits for them to return
func (s *Scheduler) Stop() error {
	s.cancel()
	return s.cron.Shutdown()
}
