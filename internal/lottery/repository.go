package lottery

import (
	"github.com/casynetic/WagerBoard_Go/internal/repository"
)

// Repository is a local interface for draw persistence.
type Repository interface {
	repository.Lottery
}
