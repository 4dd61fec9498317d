package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
	"github.com/casynetic/WagerBoard_Go/internal/lottery"
	"github.com/casynetic/WagerBoard_Go/internal/milestone"
)

// ============================================================================
// MOCKS
// ============================================================================

type MockLinkingService struct {
	mock.Mock
}

func (m *MockLinkingService) Link(ctx context.Context, platform, platformID, affiliateUsername, kickUsername string) (*domain.AccountLink, error) {
	args := m.Called(ctx, platform, platformID, affiliateUsername, kickUsername)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountLink), args.Error(1)
}

func (m *MockLinkingService) Unlink(ctx context.Context, platform, platformID string) error {
	args := m.Called(ctx, platform, platformID)
	return args.Error(0)
}

func (m *MockLinkingService) Get(ctx context.Context, platform, platformID string) (*domain.AccountLink, error) {
	args := m.Called(ctx, platform, platformID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountLink), args.Error(1)
}

func (m *MockLinkingService) Resolve(ctx context.Context, platform, platformID, fallback string) (string, error) {
	args := m.Called(ctx, platform, platformID, fallback)
	return args.String(0), args.Error(1)
}

type MockLeaderboardService struct {
	mock.Mock
}

func (m *MockLeaderboardService) SetPeriod(ctx context.Context, cfg domain.PeriodConfig) (*domain.PeriodConfig, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodConfig), args.Error(1)
}

func (m *MockLeaderboardService) CurrentPeriod(ctx context.Context) (*domain.PeriodConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodConfig), args.Error(1)
}

func (m *MockLeaderboardService) ResolvePeriod(ctx context.Context, start, end string) (domain.Period, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(domain.Period), args.Error(1)
}

func (m *MockLeaderboardService) Leaderboard(ctx context.Context, period domain.Period, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, period, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func (m *MockLeaderboardService) Rank(ctx context.Context, period domain.Period, platform, platformID, fallbackName string) (*domain.LeaderboardEntry, error) {
	args := m.Called(ctx, period, platform, platformID, fallbackName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaderboardEntry), args.Error(1)
}

func (m *MockLeaderboardService) Info(ctx context.Context) (*domain.LeaderboardInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaderboardInfo), args.Error(1)
}

type MockLotteryService struct {
	mock.Mock
}

func (m *MockLotteryService) Tickets(ctx context.Context, period domain.Period, username string) (*domain.UserTickets, error) {
	args := m.Called(ctx, period, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserTickets), args.Error(1)
}

func (m *MockLotteryService) Draw(ctx context.Context, req lottery.DrawRequest) (*domain.LotteryDraw, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LotteryDraw), args.Error(1)
}

func (m *MockLotteryService) LatestDraw(ctx context.Context, period domain.Period) (*domain.LotteryDraw, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LotteryDraw), args.Error(1)
}

type MockMilestoneService struct {
	mock.Mock
}

func (m *MockMilestoneService) Create(ctx context.Context, in milestone.Input) (*domain.Milestone, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Milestone), args.Error(1)
}

func (m *MockMilestoneService) Update(ctx context.Context, id int64, in milestone.Input) (*domain.Milestone, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Milestone), args.Error(1)
}

func (m *MockMilestoneService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMilestoneService) List(ctx context.Context) ([]domain.Milestone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Milestone), args.Error(1)
}

func (m *MockMilestoneService) Progress(ctx context.Context, req milestone.ProgressRequest) (*domain.Progression, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Progression), args.Error(1)
}
