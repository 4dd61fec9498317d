package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// LinkingRepository implements repository.Linking
type LinkingRepository struct {
	db *pgxpool.Pool
}

// NewLinkingRepository creates a new linking repository
func NewLinkingRepository(db *pgxpool.Pool) *LinkingRepository {
	return &LinkingRepository{db: db}
}

// UpsertLink creates a link or overwrites the existing one for the same identity
func (r *LinkingRepository) UpsertLink(ctx context.Context, link *domain.AccountLink) error {
	query := `
		INSERT INTO account_links (platform, platform_id, affiliate_username, kick_username, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (platform, platform_id) DO UPDATE
		SET affiliate_username = EXCLUDED.affiliate_username,
		    kick_username = EXCLUDED.kick_username,
		    updated_at = NOW()
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		link.Platform,
		link.PlatformID,
		link.AffiliateUsername,
		link.KickUsername,
	).Scan(&link.CreatedAt, &link.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertLink, err)
	}
	return nil
}

// GetLink retrieves the link for a platform identity
func (r *LinkingRepository) GetLink(ctx context.Context, platform, platformID string) (*domain.AccountLink, error) {
	query := `
		SELECT platform, platform_id, affiliate_username, kick_username, created_at, updated_at
		FROM account_links
		WHERE platform = $1 AND platform_id = $2
	`
	var link domain.AccountLink
	err := r.db.QueryRow(ctx, query, platform, platformID).Scan(
		&link.Platform,
		&link.PlatformID,
		&link.AffiliateUsername,
		&link.KickUsername,
		&link.CreatedAt,
		&link.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetLink, err)
	}
	return &link, nil
}

// DeleteLink removes the link for a platform identity
func (r *LinkingRepository) DeleteLink(ctx context.Context, platform, platformID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM account_links WHERE platform = $1 AND platform_id = $2`, platform, platformID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteLink, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLinkNotFound
	}
	return nil
}
