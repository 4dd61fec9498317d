package milestone

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/casynetic/WagerBoard_Go/internal/affiliate"
	"github.com/casynetic/WagerBoard_Go/internal/domain"
	"github.com/casynetic/WagerBoard_Go/internal/logger"
	"github.com/casynetic/WagerBoard_Go/internal/metrics"
)

const maxRewardTextLength = 200

// NameResolver maps a platform identity to the affiliate username to look up.
type NameResolver interface {
	Resolve(ctx context.Context, platform, platformID, fallback string) (string, error)
}

// Input is the editable part of a milestone.
type Input struct {
	Amount     decimal.Decimal
	RewardRole string
	RewardText string
}

// ProgressRequest identifies whose progress to evaluate and which reward roles they hold.
type ProgressRequest struct {
	Platform   string
	PlatformID string
	// Username is used when the identity is not linked
	Username  string
	HeldRoles []string
}

// Service defines the milestone service interface
type Service interface {
	Create(ctx context.Context, in Input) (*domain.Milestone, error)
	Update(ctx context.Context, id int64, in Input) (*domain.Milestone, error)
	Delete(ctx context.Context, id int64) error
	// List returns the ladder ordered by amount ascending
	List(ctx context.Context) ([]domain.Milestone, error)

	// Progress evaluates cumulative wagers since the configured start date
	Progress(ctx context.Context, req ProgressRequest) (*domain.Progression, error)
}

// Options configures progress evaluation.
type Options struct {
	// Since is the first day counted towards cumulative wagers
	Since  time.Time
	Policy RatioPolicy
	// Now defaults to time.Now
	Now func() time.Time
}

type service struct {
	repo     Repository
	records  affiliate.Source
	resolver NameResolver
	opts     Options
}

// NewService creates a new milestone service
func NewService(repo Repository, records affiliate.Source, resolver NameResolver, opts Options) Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Policy == "" {
		opts.Policy = RatioAgainstHighest
	}
	return &service{
		repo:     repo,
		records:  records,
		resolver: resolver,
		opts:     opts,
	}
}

func (s *service) Create(ctx context.Context, in Input) (*domain.Milestone, error) {
	m, err := in.toMilestone()
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateMilestone(ctx, m); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("Milestone created", "id", m.ID, "amount", m.Amount.String(), "role", m.RewardRole)
	return m, nil
}

func (s *service) Update(ctx context.Context, id int64, in Input) (*domain.Milestone, error) {
	m, err := in.toMilestone()
	if err != nil {
		return nil, err
	}
	m.ID = id
	if err := s.repo.UpdateMilestone(ctx, m); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("Milestone updated", "id", id, "amount", m.Amount.String(), "role", m.RewardRole)
	return m, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteMilestone(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Milestone deleted", "id", id)
	return nil
}

func (s *service) List(ctx context.Context) ([]domain.Milestone, error) {
	return s.repo.ListMilestones(ctx)
}

func (s *service) Progress(ctx context.Context, req ProgressRequest) (*domain.Progression, error) {
	log := logger.FromContext(ctx)

	username, err := s.resolver.Resolve(ctx, req.Platform, req.PlatformID, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve username: %w", err)
	}
	if username == "" {
		return nil, fmt.Errorf("%w: a username or linked account is required", domain.ErrInvalidInput)
	}

	ladder, err := s.repo.ListMilestones(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load milestones: %w", err)
	}

	period := domain.PeriodThrough(s.opts.Since, s.opts.Now())
	records, err := s.records.FetchRecords(ctx, period)
	if err != nil {
		return nil, err
	}

	current := decimal.Zero
	for _, r := range records {
		if domain.SameUsername(r.Username, username) {
			current = current.Add(r.WageredAmount)
		}
	}

	p := Evaluate(current, ladder, req.HeldRoles, s.opts.Policy)
	p.Username = username

	metrics.ProgressEvaluations.WithLabelValues(string(p.State)).Inc()
	metrics.RoleChanges.WithLabelValues(metrics.ActionGrant).Add(float64(len(p.RolesToGrant)))
	metrics.RoleChanges.WithLabelValues(metrics.ActionRevoke).Add(float64(len(p.RolesToRevoke)))
	log.Debug("Milestone progress evaluated",
		"username", username,
		"current", current.String(),
		"state", p.State,
		"grant", p.RolesToGrant,
		"revoke", p.RolesToRevoke)
	return &p, nil
}

// toMilestone normalises the input to cents before checking it, so an amount
// that rounds to zero is rejected
func (in Input) toMilestone() (*domain.Milestone, error) {
	amount := in.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be at least 0.01", domain.ErrInvalidMilestone)
	}
	role := strings.TrimSpace(in.RewardRole)
	text := strings.TrimSpace(in.RewardText)
	if role == "" && text == "" {
		return nil, fmt.Errorf("%w: a reward role or reward text is required", domain.ErrInvalidMilestone)
	}
	if len(text) > maxRewardTextLength {
		return nil, fmt.Errorf("%w: reward text is too long", domain.ErrInvalidMilestone)
	}
	return &domain.Milestone{
		Amount:     amount,
		RewardRole: role,
		RewardText: text,
	}, nil
}
