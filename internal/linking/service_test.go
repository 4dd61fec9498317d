package linking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// Mock objects
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) UpsertLink(ctx context.Context, link *domain.AccountLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}
func (m *MockRepository) GetLink(ctx context.Context, platform, platformID string) (*domain.AccountLink, error) {
	args := m.Called(ctx, platform, platformID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountLink), args.Error(1)
}
func (m *MockRepository) DeleteLink(ctx context.Context, platform, platformID string) error {
	args := m.Called(ctx, platform, platformID)
	return args.Error(0)
}

type MockSource struct {
	mock.Mock
}

func (m *MockSource) FetchRecords(ctx context.Context, period domain.Period) ([]domain.AffiliateRecord, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AffiliateRecord), args.Error(1)
}

var fixedNow = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

func requireAffiliateOpts() Options {
	return Options{
		RequireAffiliate: true,
		Since:            time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		Now:              func() time.Time { return fixedNow },
	}
}

func TestLink_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo, nil, Options{})

	repo.On("UpsertLink", ctx, mock.MatchedBy(func(l *domain.AccountLink) bool {
		return l.Platform == domain.PlatformDiscord && l.PlatformID == "42" &&
			l.AffiliateUsername == "Alice" && l.KickUsername == "alice_kick"
	})).Return(nil)

	link, err := svc.Link(ctx, domain.PlatformDiscord, "42", "  Alice ", "alice_kick")

	require.NoError(t, err)
	assert.Equal(t, "Alice", link.AffiliateUsername)
	repo.AssertExpectations(t)
}

func TestLink_Validation(t *testing.T) {
	tests := []struct {
		name       string
		platform   string
		platformID string
		username   string
		wantErr    error
	}{
		{"unknown platform", "twitch", "1", "alice", domain.ErrInvalidPlatform},
		{"empty platform id", domain.PlatformDiscord, " ", "alice", domain.ErrInvalidInput},
		{"empty username", domain.PlatformDiscord, "1", "   ", domain.ErrInvalidInput},
		{"username too long", domain.PlatformDiscord, "1", string(make([]byte, MaxUsernameLength+1)), domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewService(repo, nil, Options{})

			_, err := svc.Link(context.Background(), tt.platform, tt.platformID, tt.username, "")

			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "UpsertLink", mock.Anything, mock.Anything)
		})
	}
}

func TestLink_RequireAffiliate(t *testing.T) {
	ctx := context.Background()
	expectedPeriod := domain.Period{
		Start: time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
	}
	records := []domain.AffiliateRecord{
		{Username: "Alice", WageredAmount: decimal.NewFromInt(10)},
		{Username: "bob", WageredAmount: decimal.Zero},
	}

	t.Run("member is linked", func(t *testing.T) {
		repo := new(MockRepository)
		src := new(MockSource)
		svc := NewService(repo, src, requireAffiliateOpts())

		src.On("FetchRecords", ctx, expectedPeriod).Return(records, nil)
		repo.On("UpsertLink", ctx, mock.Anything).Return(nil)

		_, err := svc.Link(ctx, domain.PlatformDiscord, "1", "alice", "")

		require.NoError(t, err)
		src.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("non-member is rejected", func(t *testing.T) {
		repo := new(MockRepository)
		src := new(MockSource)
		svc := NewService(repo, src, requireAffiliateOpts())

		src.On("FetchRecords", ctx, expectedPeriod).Return(records, nil)

		_, err := svc.Link(ctx, domain.PlatformDiscord, "1", "mallory", "")

		assert.ErrorIs(t, err, domain.ErrNotAffiliated)
		repo.AssertNotCalled(t, "UpsertLink", mock.Anything, mock.Anything)
	})

	t.Run("upstream failure is surfaced", func(t *testing.T) {
		repo := new(MockRepository)
		src := new(MockSource)
		svc := NewService(repo, src, requireAffiliateOpts())

		src.On("FetchRecords", ctx, expectedPeriod).Return(nil, domain.ErrUpstreamUnavailable)

		_, err := svc.Link(ctx, domain.PlatformDiscord, "1", "alice", "")

		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
		repo.AssertNotCalled(t, "UpsertLink", mock.Anything, mock.Anything)
	})
}

func TestLink_RepositoryError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo, nil, Options{})

	repo.On("UpsertLink", ctx, mock.Anything).Return(errors.New("db down"))

	_, err := svc.Link(ctx, domain.PlatformKick, "k1", "alice", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save link")
}

func TestUnlink(t *testing.T) {
	ctx := context.Background()

	t.Run("removes link", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("DeleteLink", ctx, domain.PlatformDiscord, "1").Return(nil)

		err := NewService(repo, nil, Options{}).Unlink(ctx, domain.PlatformDiscord, "1")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("missing link", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("DeleteLink", ctx, domain.PlatformDiscord, "1").Return(domain.ErrLinkNotFound)

		err := NewService(repo, nil, Options{}).Unlink(ctx, domain.PlatformDiscord, "1")

		assert.ErrorIs(t, err, domain.ErrLinkNotFound)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	want := &domain.AccountLink{Platform: domain.PlatformDiscord, PlatformID: "1", AffiliateUsername: "alice"}
	repo.On("GetLink", ctx, domain.PlatformDiscord, "1").Return(want, nil)
	repo.On("GetLink", ctx, domain.PlatformDiscord, "2").Return(nil, domain.ErrLinkNotFound)
	svc := NewService(repo, nil, Options{})

	got, err := svc.Get(ctx, domain.PlatformDiscord, "1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.Get(ctx, domain.PlatformDiscord, "2")
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("GetLink", ctx, domain.PlatformDiscord, "1").
		Return(&domain.AccountLink{AffiliateUsername: "alice"}, nil)
	repo.On("GetLink", ctx, domain.PlatformDiscord, "2").Return(nil, domain.ErrLinkNotFound)
	repo.On("GetLink", ctx, domain.PlatformDiscord, "3").Return(nil, errors.New("db down"))
	svc := NewService(repo, nil, Options{})

	name, err := svc.Resolve(ctx, domain.PlatformDiscord, "1", "AliceDiscord")
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	name, err = svc.Resolve(ctx, domain.PlatformDiscord, "2", " BobDiscord ")
	require.NoError(t, err)
	assert.Equal(t, "BobDiscord", name, "unlinked identities fall back to the display name")

	name, err = svc.Resolve(ctx, "", "", "carol")
	require.NoError(t, err)
	assert.Equal(t, "carol", name)

	_, err = svc.Resolve(ctx, domain.PlatformDiscord, "3", "x")
	assert.Error(t, err)
}
