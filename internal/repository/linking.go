package repository

import (
	"context"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// Linking defines data access for platform identity to affiliate username links
type Linking interface {
	// UpsertLink creates or overwrites the link for link.Platform/link.PlatformID
	UpsertLink(ctx context.Context, link *domain.AccountLink) error
	// GetLink returns domain.ErrLinkNotFound when no link exists
	GetLink(ctx context.Context, platform, platformID string) (*domain.AccountLink, error)
	// DeleteLink returns domain.ErrLinkNotFound when no link exists
	DeleteLink(ctx context.Context, platform, platformID string) error
}
