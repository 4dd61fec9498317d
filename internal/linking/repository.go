package linking

import (
	"github.com/casynetic/WagerBoard_Go/internal/repository"
)

// Repository is a local interface for linking repository operations.
// It embeds repository.Linking so tests in this package can mock it.
type Repository interface {
	repository.Linking
}
