package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Milestone is an admin-defined cumulative wager threshold unlocking a reward tier.
// Amount is the identifying key; storage enforces its uniqueness.
type Milestone struct {
	ID         int64           `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	RewardRole string          `json:"reward_role"`
	RewardText string          `json:"reward_text"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProgressionState is the conceptual state of a user against a milestone set.
type ProgressionState string

const (
	StateNoneReached         ProgressionState = "none_reached"
	StatePartiallyProgressed ProgressionState = "partially_progressed"
	StateAllReached          ProgressionState = "all_reached"
)

// Progression is the derived progress of one user. It is recomputed per query.
type Progression struct {
	Username      string           `json:"username,omitempty"`
	Current       decimal.Decimal  `json:"current_wagered"`
	Highest       *Milestone       `json:"highest_reached,omitempty"`
	Next          *Milestone       `json:"next_milestone,omitempty"`
	Ratio         float64          `json:"progress_ratio"`
	State         ProgressionState `json:"state"`
	RolesToGrant  []string         `json:"roles_to_grant"`
	RolesToRevoke []string         `json:"roles_to_revoke"`
}
