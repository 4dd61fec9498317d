// Package leaderboard serves ranked wager standings for the configured period.
package leaderboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/casynetic/WagerBoard_Go/internal/affiliate"
	"github.com/casynetic/WagerBoard_Go/internal/domain"
	"github.com/casynetic/WagerBoard_Go/internal/logger"
	"github.com/casynetic/WagerBoard_Go/internal/metrics"
	"github.com/casynetic/WagerBoard_Go/internal/ranking"
)

// NameResolver maps a platform identity to the affiliate username to look up.
type NameResolver interface {
	Resolve(ctx context.Context, platform, platformID, fallback string) (string, error)
}

// Service defines the leaderboard service interface
type Service interface {
	// SetPeriod validates and persists the current period and its prizes
	SetPeriod(ctx context.Context, cfg domain.PeriodConfig) (*domain.PeriodConfig, error)

	// CurrentPeriod returns domain.ErrPeriodNotSet when no period was configured
	CurrentPeriod(ctx context.Context) (*domain.PeriodConfig, error)

	// ResolvePeriod parses explicit YYYY-MM-DD bounds, or loads the current period when both are empty
	ResolvePeriod(ctx context.Context, start, end string) (domain.Period, error)

	// Leaderboard returns the top limit entries for the period
	Leaderboard(ctx context.Context, period domain.Period, limit int) ([]domain.LeaderboardEntry, error)

	// Rank returns the standing of a platform identity, or of fallbackName when unlinked
	Rank(ctx context.Context, period domain.Period, platform, platformID, fallbackName string) (*domain.LeaderboardEntry, error)

	// Info summarises the current period, its prizes and the bonus qualifiers
	Info(ctx context.Context) (*domain.LeaderboardInfo, error)
}

type service struct {
	repo     Repository
	records  affiliate.Source
	resolver NameResolver
	now      func() time.Time
}

// NewService creates a new leaderboard service
func NewService(repo Repository, records affiliate.Source, resolver NameResolver) Service {
	return &service{
		repo:     repo,
		records:  records,
		resolver: resolver,
		now:      time.Now,
	}
}

func (s *service) SetPeriod(ctx context.Context, cfg domain.PeriodConfig) (*domain.PeriodConfig, error) {
	if err := cfg.Period.Validate(); err != nil {
		return nil, err
	}
	if cfg.Prizes.BonusThreshold != nil && !cfg.Prizes.BonusThreshold.IsPositive() {
		return nil, fmt.Errorf("%w: bonus threshold must be positive", domain.ErrInvalidInput)
	}
	cfg.Prizes.First = strings.TrimSpace(cfg.Prizes.First)
	cfg.Prizes.Second = strings.TrimSpace(cfg.Prizes.Second)
	cfg.Prizes.Third = strings.TrimSpace(cfg.Prizes.Third)
	cfg.Prizes.BonusReward = strings.TrimSpace(cfg.Prizes.BonusReward)
	cfg.UpdatedAt = s.now().UTC()

	if err := s.repo.SaveCurrentPeriod(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to save leaderboard period: %w", err)
	}

	logger.FromContext(ctx).Info("Leaderboard period set",
		"start", cfg.Period.StartDate(),
		"end", cfg.Period.EndDate(),
		"updated_by", cfg.UpdatedBy)
	return &cfg, nil
}

func (s *service) CurrentPeriod(ctx context.Context) (*domain.PeriodConfig, error) {
	return s.repo.GetCurrentPeriod(ctx)
}

func (s *service) ResolvePeriod(ctx context.Context, start, end string) (domain.Period, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" && end == "" {
		cfg, err := s.repo.GetCurrentPeriod(ctx)
		if err != nil {
			return domain.Period{}, err
		}
		return cfg.Period, nil
	}
	return domain.NewPeriod(start, end)
}

func (s *service) Leaderboard(ctx context.Context, period domain.Period, limit int) ([]domain.LeaderboardEntry, error) {
	metrics.LeaderboardQueries.WithLabelValues(metrics.QueryTop).Inc()

	if err := period.Validate(); err != nil {
		return nil, err
	}
	records, err := s.records.FetchRecords(ctx, period)
	if err != nil {
		return nil, err
	}
	return ranking.TopN(records, ClampLimit(limit)), nil
}

func (s *service) Rank(ctx context.Context, period domain.Period, platform, platformID, fallbackName string) (*domain.LeaderboardEntry, error) {
	metrics.LeaderboardQueries.WithLabelValues(metrics.QueryRank).Inc()

	if err := period.Validate(); err != nil {
		return nil, err
	}
	username, err := s.resolver.Resolve(ctx, platform, platformID, fallbackName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve username: %w", err)
	}
	if username == "" {
		return nil, fmt.Errorf("%w: a username or linked account is required", domain.ErrInvalidInput)
	}

	records, err := s.records.FetchRecords(ctx, period)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrNoLeaderboardData
	}

	entry, ok := ranking.FindRank(records, username)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotOnLeaderboard, username)
	}
	return &entry, nil
}

func (s *service) Info(ctx context.Context) (*domain.LeaderboardInfo, error) {
	metrics.LeaderboardQueries.WithLabelValues(metrics.QueryInfo).Inc()

	cfg, err := s.repo.GetCurrentPeriod(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.records.FetchRecords(ctx, cfg.Period)
	if err != nil {
		return nil, err
	}

	info := &domain.LeaderboardInfo{
		Config:       *cfg,
		Participants: len(records),
	}
	if threshold := cfg.Prizes.BonusThreshold; threshold != nil {
		for _, r := range records {
			if r.WageredAmount.GreaterThanOrEqual(*threshold) {
				info.BonusQualifiers++
			}
		}
	}
	return info, nil
}

// ClampLimit applies the default and maximum leaderboard size.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return domain.DefaultLeaderboardSize
	case limit > domain.MaxLeaderboardSize:
		return domain.MaxLeaderboardSize
	default:
		return limit
	}
}
