package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

const testAPIKey = "test-key"

type mockLeaderboard struct {
	mock.Mock
}

func (m *mockLeaderboard) SetPeriod(ctx context.Context, cfg domain.PeriodConfig) (*domain.PeriodConfig, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodConfig), args.Error(1)
}

func (m *mockLeaderboard) CurrentPeriod(ctx context.Context) (*domain.PeriodConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodConfig), args.Error(1)
}

func (m *mockLeaderboard) ResolvePeriod(ctx context.Context, start, end string) (domain.Period, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(domain.Period), args.Error(1)
}

func (m *mockLeaderboard) Leaderboard(ctx context.Context, period domain.Period, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, period, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func (m *mockLeaderboard) Rank(ctx context.Context, period domain.Period, platform, platformID, fallbackName string) (*domain.LeaderboardEntry, error) {
	args := m.Called(ctx, period, platform, platformID, fallbackName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaderboardEntry), args.Error(1)
}

func (m *mockLeaderboard) Info(ctx context.Context) (*domain.LeaderboardInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaderboardInfo), args.Error(1)
}

func testPeriod(t *testing.T) domain.Period {
	t.Helper()
	p, err := domain.NewPeriod("2024-03-01", "2024-03-31")
	require.NoError(t, err)
	return p
}

func TestRouter_PublicRoutes(t *testing.T) {
	router := NewRouter(testAPIKey, nil, nil, Services{})

	for _, path := range []string{"/healthz", "/version"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "nosniff", rec.Header().Get(HeaderContentTypeOptions))
		})
	}
}

func TestRouter_RequiresAPIKey(t *testing.T) {
	router := NewRouter(testAPIKey, nil, nil, Services{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_Leaderboard(t *testing.T) {
	lb := new(mockLeaderboard)
	period := testPeriod(t)
	entries := []domain.LeaderboardEntry{
		{Rank: 1, Username: "alice", WageredAmount: decimal.NewFromInt(500)},
		{Rank: 2, Username: "bob", WageredAmount: decimal.NewFromInt(300)},
	}
	lb.On("ResolvePeriod", mock.Anything, "", "").Return(period, nil)
	lb.On("Leaderboard", mock.Anything, period, 0).Return(entries, nil)

	router := NewRouter(testAPIKey, nil, nil, Services{Leaderboard: lb})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard", nil)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Entries []domain.LeaderboardEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Entries, 2)
	assert.Equal(t, "alice", body.Entries[0].Username)
	lb.AssertExpectations(t)
}

func TestRouter_LeaderboardNoPeriod(t *testing.T) {
	lb := new(mockLeaderboard)
	lb.On("ResolvePeriod", mock.Anything, "", "").Return(domain.Period{}, domain.ErrPeriodNotSet)

	router := NewRouter(testAPIKey, nil, nil, Services{Leaderboard: lb})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard", nil)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := NewRouter(testAPIKey, nil, nil, Services{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := NewRouter(testAPIKey, nil, nil, Services{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/lottery/tickets", nil)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
