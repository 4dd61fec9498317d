package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
	"github.com/casynetic/WagerBoard_Go/internal/milestone"
	"github.com/casynetic/WagerBoard_Go/internal/validation"
)

// MilestoneCreator is the part of the milestone service used for seeding
type MilestoneCreator interface {
	Create(ctx context.Context, in milestone.Input) (*domain.Milestone, error)
}

type milestoneSeed struct {
	Milestones []struct {
		Amount     decimal.Decimal `json:"amount"`
		RewardRole string          `json:"reward_role"`
		RewardText string          `json:"reward_text"`
	} `json:"milestones"`
}

// SeedMilestones validates the seed file against the bundled schema and
// creates every milestone it lists. Amounts already on the ladder are skipped,
// so the seed can be applied on every start. Returns the number created.
func SeedMilestones(ctx context.Context, path string, creator MilestoneCreator) (int, error) {
	if path == "" {
		return 0, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedReadSeed, err)
	}

	if err := validation.NewSchemaValidator().ValidateBytes(data, validation.MilestoneSeedSchema); err != nil {
		return 0, fmt.Errorf("%s %s: %w", ErrMsgInvalidSeed, path, err)
	}

	var seed milestoneSeed
	if err := json.Unmarshal(data, &seed); err != nil {
		return 0, fmt.Errorf("%s %s: %w", ErrMsgInvalidSeed, path, err)
	}

	created := 0
	for _, m := range seed.Milestones {
		_, err := creator.Create(ctx, milestone.Input{
			Amount:     m.Amount,
			RewardRole: m.RewardRole,
			RewardText: m.RewardText,
		})
		if errors.Is(err, domain.ErrMilestoneExists) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("failed to seed milestone %s: %w", m.Amount.String(), err)
		}
		created++
	}

	slog.Info(LogMsgMilestonesSeeded, "file", path, "created", created, "listed", len(seed.Milestones))
	return created, nil
}
