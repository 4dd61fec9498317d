package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// LotteryRepository implements repository.Lottery
type LotteryRepository struct {
	db *pgxpool.Pool
}

// NewLotteryRepository creates a new lottery draw repository
func NewLotteryRepository(db *pgxpool.Pool) *LotteryRepository {
	return &LotteryRepository{db: db}
}

// CreateDraw stores a draw and its winners in one transaction
func (r *LotteryRepository) CreateDraw(ctx context.Context, draw *domain.LotteryDraw) error {
	drawID, err := uuid.Parse(draw.ID)
	if err != nil {
		return fmt.Errorf("invalid draw id: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	query := `
		INSERT INTO lottery_draws (draw_id, start_date, end_date, ticket_unit, seed, pool_size, total_tickets, drawn_by, drawn_at)
		VALUES ($1, $2, $3, $4::text::numeric, $5, $6, $7, $8, NOW())
		RETURNING drawn_at
	`
	err = tx.QueryRow(ctx, query,
		drawID,
		draw.Period.Start,
		draw.Period.End,
		draw.TicketUnit.String(),
		draw.Seed,
		draw.PoolSize,
		draw.TotalTickets,
		draw.DrawnBy,
	).Scan(&draw.DrawnAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDrawExists
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertDraw, err)
	}

	batch := &pgx.Batch{}
	for _, w := range draw.Winners {
		batch.Queue(`INSERT INTO lottery_winners (draw_id, placement, username, tickets) VALUES ($1, $2, $3, $4)`,
			drawID, w.Placement, w.Username, w.Tickets)
	}
	br := tx.SendBatch(ctx, batch)
	for range draw.Winners {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("%s: %w", ErrMsgFailedToInsertWinner, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertWinner, err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDrawExists
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// GetDrawForPeriod returns the draw recorded for the period
func (r *LotteryRepository) GetDrawForPeriod(ctx context.Context, period domain.Period) (*domain.LotteryDraw, error) {
	query := `
		SELECT draw_id, start_date, end_date, ticket_unit::text, seed, pool_size, total_tickets, drawn_by, drawn_at
		FROM lottery_draws
		WHERE start_date = $1 AND end_date = $2
	`
	var draw domain.LotteryDraw
	var drawID uuid.UUID
	var unit string
	err := r.db.QueryRow(ctx, query, period.Start, period.End).Scan(
		&drawID,
		&draw.Period.Start,
		&draw.Period.End,
		&unit,
		&draw.Seed,
		&draw.PoolSize,
		&draw.TotalTickets,
		&draw.DrawnBy,
		&draw.DrawnAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDrawNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetDraw, err)
	}
	draw.ID = drawID.String()
	if draw.TicketUnit, err = parseNumeric(unit); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT placement, username, tickets FROM lottery_winners WHERE draw_id = $1 ORDER BY placement ASC`, drawID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetWinners, err)
	}
	defer rows.Close()

	draw.Winners = []domain.LotteryWinner{}
	for rows.Next() {
		var w domain.LotteryWinner
		if err := rows.Scan(&w.Placement, &w.Username, &w.Tickets); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetWinners, err)
		}
		draw.Winners = append(draw.Winners, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetWinners, err)
	}
	return &draw, nil
}
