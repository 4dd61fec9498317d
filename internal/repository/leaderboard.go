package repository

import (
	"context"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// Leaderboard defines data access for the configured leaderboard period
type Leaderboard interface {
	// GetCurrentPeriod returns domain.ErrPeriodNotSet when no period was configured
	GetCurrentPeriod(ctx context.Context) (*domain.PeriodConfig, error)
	SaveCurrentPeriod(ctx context.Context, cfg *domain.PeriodConfig) error
}
