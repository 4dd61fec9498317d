package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// LeaderboardRepository implements repository.Leaderboard
type LeaderboardRepository struct {
	db *pgxpool.Pool
}

// NewLeaderboardRepository creates a new leaderboard period repository
func NewLeaderboardRepository(db *pgxpool.Pool) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// GetCurrentPeriod loads the configured period and prizes
func (r *LeaderboardRepository) GetCurrentPeriod(ctx context.Context) (*domain.PeriodConfig, error) {
	query := `
		SELECT start_date, end_date, prize_first, prize_second, prize_third,
		       bonus_threshold::text, bonus_reward, updated_by, updated_at
		FROM leaderboard_periods
		WHERE id = 1
	`
	var cfg domain.PeriodConfig
	var threshold pgtype.Text
	err := r.db.QueryRow(ctx, query).Scan(
		&cfg.Period.Start,
		&cfg.Period.End,
		&cfg.Prizes.First,
		&cfg.Prizes.Second,
		&cfg.Prizes.Third,
		&threshold,
		&cfg.Prizes.BonusReward,
		&cfg.UpdatedBy,
		&cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPeriodNotSet
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPeriod, err)
	}

	cfg.Prizes.BonusThreshold, err = parseNullableNumeric(threshold)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveCurrentPeriod replaces the configured period and prizes
func (r *LeaderboardRepository) SaveCurrentPeriod(ctx context.Context, cfg *domain.PeriodConfig) error {
	query := `
		INSERT INTO leaderboard_periods (id, start_date, end_date, prize_first, prize_second, prize_third,
		                                 bonus_threshold, bonus_reward, updated_by, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6::text::numeric, $7, $8, NOW())
		ON CONFLICT (id) DO UPDATE
		SET start_date = EXCLUDED.start_date,
		    end_date = EXCLUDED.end_date,
		    prize_first = EXCLUDED.prize_first,
		    prize_second = EXCLUDED.prize_second,
		    prize_third = EXCLUDED.prize_third,
		    bonus_threshold = EXCLUDED.bonus_threshold,
		    bonus_reward = EXCLUDED.bonus_reward,
		    updated_by = EXCLUDED.updated_by,
		    updated_at = NOW()
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		cfg.Period.Start,
		cfg.Period.End,
		cfg.Prizes.First,
		cfg.Prizes.Second,
		cfg.Prizes.Third,
		numericParam(cfg.Prizes.BonusThreshold),
		cfg.Prizes.BonusReward,
		cfg.UpdatedBy,
	).Scan(&cfg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSavePeriod, err)
	}
	return nil
}
