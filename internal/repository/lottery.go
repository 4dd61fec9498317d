package repository

import (
	"context"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// Lottery defines data access for persisted lottery draws
type Lottery interface {
	// CreateDraw stores the draw and its winners atomically.
	// A second draw for the same period yields domain.ErrDrawExists
	CreateDraw(ctx context.Context, draw *domain.LotteryDraw) error
	// GetDrawForPeriod returns domain.ErrDrawNotFound when the period has no draw
	GetDrawForPeriod(ctx context.Context, period domain.Period) (*domain.LotteryDraw, error)
}
