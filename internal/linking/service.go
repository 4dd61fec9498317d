// Package linking maps platform identities to affiliate usernames.
package linking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/casynetic/WagerBoard_Go/internal/affiliate"
	"github.com/casynetic/WagerBoard_Go/internal/domain"
	"github.com/casynetic/WagerBoard_Go/internal/logger"
	"github.com/casynetic/WagerBoard_Go/internal/metrics"
)

// Service defines the linking service interface
type Service interface {
	// Link creates or overwrites the link for a platform identity
	Link(ctx context.Context, platform, platformID, affiliateUsername, kickUsername string) (*domain.AccountLink, error)

	// Unlink removes the link. A missing link yields domain.ErrLinkNotFound
	Unlink(ctx context.Context, platform, platformID string) error

	// Get returns the link. A missing link yields domain.ErrLinkNotFound
	Get(ctx context.Context, platform, platformID string) (*domain.AccountLink, error)

	// Resolve returns the linked affiliate username, or fallback when the identity is not linked
	Resolve(ctx context.Context, platform, platformID, fallback string) (string, error)
}

// Options configures the affiliate membership check performed on Link.
type Options struct {
	RequireAffiliate bool
	// Since is the first day of the record range searched for the username
	Since time.Time
	// Now defaults to time.Now
	Now func() time.Time
}

type service struct {
	repo    Repository
	records affiliate.Source
	opts    Options
}

// NewService creates a new linking service. records may be nil when
// opts.RequireAffiliate is false.
func NewService(repo Repository, records affiliate.Source, opts Options) Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{
		repo:    repo,
		records: records,
		opts:    opts,
	}
}

func (s *service) Link(ctx context.Context, platform, platformID, affiliateUsername, kickUsername string) (*domain.AccountLink, error) {
	log := logger.FromContext(ctx)

	if err := validateIdentity(platform, platformID); err != nil {
		return nil, err
	}
	affiliateUsername = strings.TrimSpace(affiliateUsername)
	kickUsername = strings.TrimSpace(kickUsername)
	if affiliateUsername == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUsernameRequired)
	}
	if len(affiliateUsername) > MaxUsernameLength || len(kickUsername) > MaxUsernameLength {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUsernameTooLong)
	}

	if s.opts.RequireAffiliate {
		if err := s.checkAffiliated(ctx, affiliateUsername); err != nil {
			return nil, err
		}
	}

	link := &domain.AccountLink{
		Platform:          platform,
		PlatformID:        platformID,
		AffiliateUsername: affiliateUsername,
		KickUsername:      kickUsername,
	}
	if err := s.repo.UpsertLink(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to save link: %w", err)
	}

	metrics.AccountLinks.WithLabelValues(metrics.ActionLink).Inc()
	log.Info(LogMsgAccountLinked, "platform", platform, "platform_id", platformID, "affiliate_username", affiliateUsername)
	return link, nil
}

func (s *service) checkAffiliated(ctx context.Context, username string) error {
	log := logger.FromContext(ctx)

	period := domain.PeriodThrough(s.opts.Since, s.opts.Now())

	records, err := s.records.FetchRecords(ctx, period)
	if err != nil {
		log.Warn(LogMsgAffiliateCheckFailed, "username", username, "error", err)
		return err
	}
	for _, r := range records {
		if domain.SameUsername(r.Username, username) {
			return nil
		}
	}

	log.Info(LogMsgNotAffiliated, "username", username)
	return domain.ErrNotAffiliated
}

func (s *service) Unlink(ctx context.Context, platform, platformID string) error {
	if err := validateIdentity(platform, platformID); err != nil {
		return err
	}
	if err := s.repo.DeleteLink(ctx, platform, platformID); err != nil {
		return err
	}

	metrics.AccountLinks.WithLabelValues(metrics.ActionUnlink).Inc()
	logger.FromContext(ctx).Info(LogMsgAccountUnlinked, "platform", platform, "platform_id", platformID)
	return nil
}

func (s *service) Get(ctx context.Context, platform, platformID string) (*domain.AccountLink, error) {
	if err := validateIdentity(platform, platformID); err != nil {
		return nil, err
	}
	return s.repo.GetLink(ctx, platform, platformID)
}

func (s *service) Resolve(ctx context.Context, platform, platformID, fallback string) (string, error) {
	if platform == "" || platformID == "" {
		return strings.TrimSpace(fallback), nil
	}
	link, err := s.repo.GetLink(ctx, platform, platformID)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			return strings.TrimSpace(fallback), nil
		}
		return "", err
	}
	return link.AffiliateUsername, nil
}

func validateIdentity(platform, platformID string) error {
	if !SupportedPlatforms[platform] {
		return fmt.Errorf("%w: %q", domain.ErrInvalidPlatform, platform)
	}
	if strings.TrimSpace(platformID) == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgPlatformIDEmpty)
	}
	return nil
}
