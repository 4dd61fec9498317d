package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/casynetic/WagerBoard_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}

// Numeric columns are written and read as text so decimal precision survives
// the round trip without a float conversion.

// parseNumeric converts a NUMERIC column selected as ::text into a decimal.
func parseNumeric(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToParseStoredValue, err)
	}
	return d, nil
}

// parseNullableNumeric converts a nullable NUMERIC::text column into a decimal pointer.
func parseNullableNumeric(t pgtype.Text) (*decimal.Decimal, error) {
	if !t.Valid {
		return nil, nil
	}
	d, err := parseNumeric(t.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// numericParam renders an optional decimal for a $n::text::numeric placeholder.
func numericParam(d *decimal.Decimal) pgtype.Text {
	if d == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: d.String(), Valid: true}
}
