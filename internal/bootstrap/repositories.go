package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casynetic/WagerBoard_Go/internal/database/postgres"
	"github.com/casynetic/WagerBoard_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Leaderboard repository.Leaderboard
	Lottery     repository.Lottery
	Milestone   repository.Milestone
	Linking     repository.Linking
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Leaderboard: postgres.NewLeaderboardRepository(dbPool),
		Lottery:     postgres.NewLotteryRepository(dbPool),
		Milestone:   postgres.NewMilestoneRepository(dbPool),
		Linking:     postgres.NewLinkingRepository(dbPool),
	}
}
