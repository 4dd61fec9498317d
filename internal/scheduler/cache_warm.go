package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/casynetic/WagerBoard_Go/internal/concurrency"
	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// PeriodLoader returns the configured leaderboard period
type PeriodLoader interface {
	CurrentPeriod(ctx context.Context) (*domain.PeriodConfig, error)
}

// Refresher re-fetches and caches the records for a period
type Refresher interface {
	Refresh(ctx context.Context, period domain.Period) ([]domain.AffiliateRecord, error)
}

// CacheWarmJob keeps the affiliate cache populated for the current
// leaderboard period and the cumulative milestone window.
type CacheWarmJob struct {
	periods        PeriodLoader
	cache          Refresher
	locks          *concurrency.LockManager
	milestoneSince time.Time
	now            func() time.Time
}

// NewCacheWarmJob creates the warm-up job. A period whose refresh lock is
// held elsewhere is skipped for this run. A zero milestoneSince disables
// warming the milestone window.
func NewCacheWarmJob(periods PeriodLoader, cache Refresher, locks *concurrency.LockManager, milestoneSince time.Time) *CacheWarmJob {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &CacheWarmJob{
		periods:        periods,
		cache:          cache,
		locks:          locks,
		milestoneSince: milestoneSince,
		now:            time.Now,
	}
}

// Name implements Job
func (j *CacheWarmJob) Name() string { return JobCacheWarm }

// Run implements Job
func (j *CacheWarmJob) Run(ctx context.Context) error {
	var targets []domain.Period

	cfg, err := j.periods.CurrentPeriod(ctx)
	switch {
	case errors.Is(err, domain.ErrPeriodNotSet):
	case err != nil:
		return fmt.Errorf("failed to load current period: %w", err)
	default:
		targets = append(targets, cfg.Period)
	}

	if !j.milestoneSince.IsZero() {
		targets = append(targets, domain.PeriodThrough(j.milestoneSince, j.now()))
	}

	if len(targets) == 0 {
		return ErrSkipped
	}

	for _, p := range targets {
		ran, err := j.locks.TryWithLock(p.RefreshLockKey(), func() error {
			records, err := j.cache.Refresh(ctx, p)
			if err != nil {
				return err
			}
			slog.Debug(LogMsgCacheWarmed, "period", p.Key(), "records", len(records))
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to warm period %s: %w", p.Key(), err)
		}
		if !ran {
			slog.Debug(LogMsgCacheWarmBusy, "period", p.Key())
		}
	}
	return nil
}
