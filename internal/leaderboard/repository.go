package leaderboard

import (
	"github.com/casynetic/WagerBoard_Go/internal/repository"
)

// Repository is a local interface for leaderboard period storage.
type Repository interface {
	repository.Leaderboard
}
