package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// MilestoneRepository implements repository.Milestone
type MilestoneRepository struct {
	db *pgxpool.Pool
}

// NewMilestoneRepository creates a new milestone repository
func NewMilestoneRepository(db *pgxpool.Pool) *MilestoneRepository {
	return &MilestoneRepository{db: db}
}

const milestoneColumns = `milestone_id, amount::text, reward_role, reward_text, created_at, updated_at`

func scanMilestone(row pgx.Row) (*domain.Milestone, error) {
	var m domain.Milestone
	var amount string
	if err := row.Scan(&m.ID, &amount, &m.RewardRole, &m.RewardText, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	d, err := parseNumeric(amount)
	if err != nil {
		return nil, err
	}
	m.Amount = d
	return &m, nil
}

// ListMilestones returns all milestones ordered by amount ascending
func (r *MilestoneRepository) ListMilestones(ctx context.Context) ([]domain.Milestone, error) {
	rows, err := r.db.Query(ctx, `SELECT `+milestoneColumns+` FROM milestones ORDER BY amount ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListMilestones, err)
	}
	defer rows.Close()

	milestones := []domain.Milestone{}
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListMilestones, err)
		}
		milestones = append(milestones, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListMilestones, err)
	}
	return milestones, nil
}

// GetMilestone returns a milestone by id
func (r *MilestoneRepository) GetMilestone(ctx context.Context, id int64) (*domain.Milestone, error) {
	m, err := scanMilestone(r.db.QueryRow(ctx, `SELECT `+milestoneColumns+` FROM milestones WHERE milestone_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMilestoneNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetMilestone, err)
	}
	return m, nil
}

// CreateMilestone inserts a milestone and fills in its id and timestamps
func (r *MilestoneRepository) CreateMilestone(ctx context.Context, m *domain.Milestone) error {
	query := `
		INSERT INTO milestones (amount, reward_role, reward_text)
		VALUES ($1::text::numeric, $2, $3)
		RETURNING milestone_id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, m.Amount.String(), m.RewardRole, m.RewardText).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMilestoneExists
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveMilestone, err)
	}
	return nil
}

// UpdateMilestone overwrites amount, role and text of an existing milestone
func (r *MilestoneRepository) UpdateMilestone(ctx context.Context, m *domain.Milestone) error {
	query := `
		UPDATE milestones
		SET amount = $2::text::numeric, reward_role = $3, reward_text = $4, updated_at = NOW()
		WHERE milestone_id = $1
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, m.ID, m.Amount.String(), m.RewardRole, m.RewardText).
		Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrMilestoneNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrMilestoneExists
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveMilestone, err)
	}
	return nil
}

// DeleteMilestone removes a milestone by id
func (r *MilestoneRepository) DeleteMilestone(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM milestones WHERE milestone_id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteMilestone, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMilestoneNotFound
	}
	return nil
}
