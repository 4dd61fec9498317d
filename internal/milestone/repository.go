package milestone

import (
	"github.com/casynetic/WagerBoard_Go/internal/repository"
)

// Repository is a local interface for reward ladder storage.
type Repository interface {
	repository.Milestone
}
