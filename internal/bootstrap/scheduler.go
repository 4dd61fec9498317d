package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/casynetic/WagerBoard_Go/internal/config"
	"github.com/casynetic/WagerBoard_Go/internal/scheduler"
	"github.com/casynetic/WagerBoard_Go/internal/server"
)

// StartScheduler registers the background jobs and starts them
func StartScheduler(cfg *config.Config, svc server.Services, records *RecordSource) (*scheduler.Scheduler, error) {
	sched, err := scheduler.New(SchedulerJobTimeout)
	if err != nil {
		return nil, err
	}

	warm := scheduler.NewCacheWarmJob(svc.Leaderboard, records.Source, records.RefreshLocks, cfg.MilestoneStartDate)
	if err := sched.Every(cfg.CacheWarmInterval, warm); err != nil {
		_ = sched.Stop()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedStartJobs, err)
	}

	sched.Start()
	slog.Info(LogMsgSchedulerStarted, "cache_warm_interval", cfg.CacheWarmInterval)
	return sched, nil
}
