package postgres

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

func TestLeaderboardRepository_Integration(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	repo := NewLeaderboardRepository(pool)

	t.Run("NotSet", func(t *testing.T) {
		_, err := repo.GetCurrentPeriod(ctx)
		assert.ErrorIs(t, err, domain.ErrPeriodNotSet)
	})

	t.Run("SaveAndGet", func(t *testing.T) {
		period, err := domain.NewPeriod("2025-05-01", "2025-05-31")
		require.NoError(t, err)
		threshold := decimal.NewFromInt(10000)

		cfg := &domain.PeriodConfig{
			Period: period,
			Prizes: domain.Prizes{
				First: "$500", Second: "$250", Third: "$100",
				BonusThreshold: &threshold, BonusReward: "$25",
			},
			UpdatedBy: "admin",
		}
		require.NoError(t, repo.SaveCurrentPeriod(ctx, cfg))

		got, err := repo.GetCurrentPeriod(ctx)
		require.NoError(t, err)
		assert.Equal(t, "2025-05-01", got.Period.StartDate())
		assert.Equal(t, "2025-05-31", got.Period.EndDate())
		assert.Equal(t, "$250", got.Prizes.Second)
		require.NotNil(t, got.Prizes.BonusThreshold)
		assert.True(t, threshold.Equal(*got.Prizes.BonusThreshold))
	})

	t.Run("SaveReplaces", func(t *testing.T) {
		period, err := domain.NewPeriod("2025-06-01", "2025-06-30")
		require.NoError(t, err)
		require.NoError(t, repo.SaveCurrentPeriod(ctx, &domain.PeriodConfig{Period: period}))

		got, err := repo.GetCurrentPeriod(ctx)
		require.NoError(t, err)
		assert.Equal(t, "2025-06-01", got.Period.StartDate())
		assert.Nil(t, got.Prizes.BonusThreshold)
	})
}
