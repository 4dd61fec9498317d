package lottery

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casynetic/WagerBoard_Go/internal/affiliate"
	"github.com/casynetic/WagerBoard_Go/internal/concurrency"
	"github.com/casynetic/WagerBoard_Go/internal/domain"
	"github.com/casynetic/WagerBoard_Go/internal/logger"
	"github.com/casynetic/WagerBoard_Go/internal/metrics"
)

// DrawRequest describes a lottery draw for one period.
type DrawRequest struct {
	Period domain.Period
	// Winners is the number of placements to draw; zero means domain.DefaultLotteryWinners
	Winners int
	// Seed makes the draw reproducible; nil draws with a time-based seed
	Seed    *int64
	DrawnBy string
}

// Service defines the lottery service interface
type Service interface {
	// Tickets returns the ticket standing of username for the period. Users without tickets get zero.
	Tickets(ctx context.Context, period domain.Period, username string) (*domain.UserTickets, error)

	// Draw selects and persists the winners for a period. Each period can be drawn once.
	Draw(ctx context.Context, req DrawRequest) (*domain.LotteryDraw, error)

	// LatestDraw returns the persisted draw for the period
	LatestDraw(ctx context.Context, period domain.Period) (*domain.LotteryDraw, error)
}

type service struct {
	repo    Repository
	records affiliate.Source
	unit    decimal.Decimal
	locks   *concurrency.LockManager
	now     func() time.Time
}

// NewService creates a new lottery service. A non-positive unit falls back to domain.DefaultTicketUnit.
func NewService(repo Repository, records affiliate.Source, unit decimal.Decimal, locks *concurrency.LockManager) Service {
	if !unit.IsPositive() {
		unit = domain.DefaultTicketUnit
	}
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:    repo,
		records: records,
		unit:    unit,
		locks:   locks,
		now:     time.Now,
	}
}

func (s *service) Tickets(ctx context.Context, period domain.Period, username string) (*domain.UserTickets, error) {
	metrics.LeaderboardQueries.WithLabelValues(metrics.QueryTicket).Inc()

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: a username or linked account is required", domain.ErrInvalidInput)
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	records, err := s.records.FetchRecords(ctx, period)
	if err != nil {
		return nil, err
	}

	wagered := decimal.Zero
	for _, r := range records {
		if domain.SameUsername(r.Username, username) {
			wagered = wagered.Add(r.WageredAmount)
		}
	}
	alloc := ComputeTickets(records, s.unit)

	return &domain.UserTickets{
		Username:      username,
		WageredAmount: wagered,
		Tickets:       TicketsFor(wagered, s.unit),
		TotalTickets:  alloc.Total(),
		TicketUnit:    s.unit,
	}, nil
}

func (s *service) Draw(ctx context.Context, req DrawRequest) (*domain.LotteryDraw, error) {
	if err := req.Period.Validate(); err != nil {
		return nil, err
	}
	if req.Winners == 0 {
		req.Winners = domain.DefaultLotteryWinners
	}
	if req.Winners < 0 || req.Winners > domain.MaxLotteryWinners {
		return nil, fmt.Errorf("%w: winners must be between 1 and %d", domain.ErrInvalidInput, domain.MaxLotteryWinners)
	}

	var draw *domain.LotteryDraw
	err := s.locks.WithLock(ctx, drawLockKey(req.Period), func() error {
		var err error
		draw, err = s.draw(ctx, req)
		return err
	})
	if err != nil {
		outcome := metrics.OutcomeFailure
		if errors.Is(err, domain.ErrNoEligibleParticipants) {
			outcome = metrics.OutcomeEmpty
		}
		metrics.LotteryDraws.WithLabelValues(outcome).Inc()
		return nil, err
	}

	metrics.LotteryDraws.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.LotteryTicketsPooled.Set(float64(draw.TotalTickets))
	return draw, nil
}

// draw runs under the per-period lock
func (s *service) draw(ctx context.Context, req DrawRequest) (*domain.LotteryDraw, error) {
	log := logger.FromContext(ctx)

	if _, err := s.repo.GetDrawForPeriod(ctx, req.Period); err == nil {
		return nil, domain.ErrDrawExists
	} else if !errors.Is(err, domain.ErrDrawNotFound) {
		return nil, fmt.Errorf("failed to check existing draw: %w", err)
	}

	records, err := s.records.FetchRecords(ctx, req.Period)
	if err != nil {
		return nil, err
	}
	alloc := ComputeTickets(records, s.unit)

	seed := s.now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	names, err := DrawWinners(alloc, req.Winners, rand.New(rand.NewSource(seed)))
	if err != nil {
		log.Info("Lottery draw has no eligible participants", "start", req.Period.StartDate(), "end", req.Period.EndDate())
		return nil, err
	}

	winners := make([]domain.LotteryWinner, 0, len(names))
	for i, name := range names {
		holder, _ := alloc.Find(name)
		winners = append(winners, domain.LotteryWinner{
			Placement: i + 1,
			Username:  holder.Username,
			Tickets:   holder.Tickets,
		})
	}

	draw := &domain.LotteryDraw{
		ID:           uuid.NewString(),
		Period:       req.Period,
		TicketUnit:   s.unit,
		Seed:         seed,
		PoolSize:     len(alloc),
		TotalTickets: alloc.Total(),
		Winners:      winners,
		DrawnBy:      strings.TrimSpace(req.DrawnBy),
		DrawnAt:      s.now().UTC(),
	}
	if err := s.repo.CreateDraw(ctx, draw); err != nil {
		if errors.Is(err, domain.ErrDrawExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save draw: %w", err)
	}

	log.Info("Lottery drawn",
		"draw_id", draw.ID,
		"start", req.Period.StartDate(),
		"end", req.Period.EndDate(),
		"winners", len(winners),
		"pool_size", draw.PoolSize,
		"total_tickets", draw.TotalTickets,
		"seed", seed)
	return draw, nil
}

func (s *service) LatestDraw(ctx context.Context, period domain.Period) (*domain.LotteryDraw, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	return s.repo.GetDrawForPeriod(ctx, period)
}

func drawLockKey(period domain.Period) string {
	return "lottery:" + period.Key()
}
