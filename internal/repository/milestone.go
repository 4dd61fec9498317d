package repository

import (
	"context"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// Milestone defines data access for the reward ladder
type Milestone interface {
	// ListMilestones returns every milestone ordered by amount ascending
	ListMilestones(ctx context.Context) ([]domain.Milestone, error)
	GetMilestone(ctx context.Context, id int64) (*domain.Milestone, error)
	// CreateMilestone fills in ID and timestamps. A duplicate amount yields domain.ErrMilestoneExists
	CreateMilestone(ctx context.Context, m *domain.Milestone) error
	UpdateMilestone(ctx context.Context, m *domain.Milestone) error
	DeleteMilestone(ctx context.Context, id int64) error
}
