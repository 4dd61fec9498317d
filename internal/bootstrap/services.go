package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/casynetic/WagerBoard_Go/internal/affiliate"
	"github.com/casynetic/WagerBoard_Go/internal/concurrency"
	"github.com/casynetic/WagerBoard_Go/internal/config"
	"github.com/casynetic/WagerBoard_Go/internal/handler"
	"github.com/casynetic/WagerBoard_Go/internal/leaderboard"
	"github.com/casynetic/WagerBoard_Go/internal/linking"
	"github.com/casynetic/WagerBoard_Go/internal/lottery"
	"github.com/casynetic/WagerBoard_Go/internal/milestone"
	"github.com/casynetic/WagerBoard_Go/internal/server"
)

// RecordSource is the cached affiliate client plus the redis client backing
// it, if any. Redis is nil for the memory backend.
type RecordSource struct {
	Source *affiliate.CachedSource
	Redis  *redis.Client

	// RefreshLocks serialise admin refreshes with the warm job
	RefreshLocks *concurrency.LockManager
}

// InitializeRecordSource builds the affiliate API client behind the
// configured cache backend.
func InitializeRecordSource(ctx context.Context, cfg *config.Config) (*RecordSource, error) {
	client := affiliate.NewClient(cfg.AffiliateAPIURL, cfg.AffiliateAPIKey, cfg.AffiliateTimeout, cfg.AffiliateRetries)

	if cfg.CacheBackend == config.CacheBackendRedis {
		connectCtx, cancel := context.WithTimeout(ctx, RedisConnectTimeout)
		defer cancel()

		rdb, err := affiliate.NewRedisClient(connectCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
		}
		slog.Info(LogMsgRecordCacheReady, "backend", config.CacheBackendRedis, "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
		return &RecordSource{
			Source:       affiliate.NewCachedSource(client, affiliate.NewRedisCache(rdb, cfg.CacheTTL)),
			Redis:        rdb,
			RefreshLocks: concurrency.NewLockManager(),
		}, nil
	}

	slog.Info(LogMsgRecordCacheReady, "backend", config.CacheBackendMemory, "size", cfg.CacheSize, "ttl", cfg.CacheTTL)
	return &RecordSource{
		Source:       affiliate.NewCachedSource(client, affiliate.NewMemoryCache(cfg.CacheSize, cfg.CacheTTL)),
		RefreshLocks: concurrency.NewLockManager(),
	}, nil
}

// ReadyChecks returns the extra readiness probes for the record source
func (rs *RecordSource) ReadyChecks() map[string]handler.HealthChecker {
	if rs.Redis == nil {
		return nil
	}
	return map[string]handler.HealthChecker{
		"redis": handler.HealthCheckerFunc(func(ctx context.Context) error {
			return rs.Redis.Ping(ctx).Err()
		}),
	}
}

// InitializeServices wires the domain services on top of the repositories
// and the shared record source.
func InitializeServices(cfg *config.Config, repos *Repositories, records *RecordSource) (server.Services, error) {
	policy, err := milestone.ParseRatioPolicy(cfg.MilestoneRatioPolicy)
	if err != nil {
		return server.Services{}, fmt.Errorf("%s: %w", ErrMsgInvalidRatioPolicy, err)
	}

	linkingService := linking.NewService(repos.Linking, records.Source, linking.Options{
		RequireAffiliate: cfg.LinkRequireAffiliate,
		Since:            cfg.MilestoneStartDate,
	})

	return server.Services{
		Leaderboard: leaderboard.NewService(repos.Leaderboard, records.Source, linkingService),
		Lottery:     lottery.NewService(repos.Lottery, records.Source, cfg.TicketUnit, concurrency.NewLockManager()),
		Milestone: milestone.NewService(repos.Milestone, records.Source, linkingService, milestone.Options{
			Since:  cfg.MilestoneStartDate,
			Policy: policy,
		}),
		Linking:      linkingService,
		RecordCache:  records.Source,
		RefreshLocks: records.RefreshLocks,
		ReadyChecks:  records.ReadyChecks(),
	}, nil
}
