package affiliate

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// countingSource is a Source that counts upstream calls
type countingSource struct {
	calls   int32
	delay   time.Duration
	records []domain.AffiliateRecord
	err     error
}

func (s *countingSource) FetchRecords(ctx context.Context, period domain.Period) ([]domain.AffiliateRecord, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.records, s.err
}

func sampleRecords() []domain.AffiliateRecord {
	return []domain.AffiliateRecord{
		{Username: "alice", WageredAmount: decimal.RequireFromString("10.5")},
		{Username: "bob", WageredAmount: decimal.NewFromInt(7)},
	}
}

func TestCachedSource_HitAfterMiss(t *testing.T) {
	src := &countingSource{records: sampleRecords()}
	cached := NewCachedSource(src, NewMemoryCache(8, time.Minute))
	ctx := context.Background()
	period := testPeriod(t)

	first, err := cached.FetchRecords(ctx, period)
	require.NoError(t, err)
	second, err := cached.FetchRecords(ctx, period)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))
}

func TestCachedSource_PeriodsAreSeparate(t *testing.T) {
	src := &countingSource{records: sampleRecords()}
	cached := NewCachedSource(src, NewMemoryCache(8, time.Minute))
	ctx := context.Background()

	other, err := domain.NewPeriod("2025-05-01", "2025-05-31")
	require.NoError(t, err)

	_, err = cached.FetchRecords(ctx, testPeriod(t))
	require.NoError(t, err)
	_, err = cached.FetchRecords(ctx, other)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&src.calls))
}

func TestCachedSource_ErrorsAreNotCached(t *testing.T) {
	src := &countingSource{err: domain.ErrUpstreamUnavailable}
	cached := NewCachedSource(src, NewMemoryCache(8, time.Minute))
	ctx := context.Background()

	_, err := cached.FetchRecords(ctx, testPeriod(t))
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)

	src.err = nil
	src.records = sampleRecords()
	records, err := cached.FetchRecords(ctx, testPeriod(t))
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, int32(2), atomic.LoadInt32(&src.calls))
}

func TestCachedSource_ConcurrentMissesShareFetch(t *testing.T) {
	src := &countingSource{records: sampleRecords(), delay: 50 * time.Millisecond}
	cached := NewCachedSource(src, NewMemoryCache(8, time.Minute))
	period := testPeriod(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			records, err := cached.FetchRecords(context.Background(), period)
			assert.NoError(t, err)
			assert.Len(t, records, 2)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))
}

func TestCachedSource_RefreshAndInvalidate(t *testing.T) {
	src := &countingSource{records: sampleRecords()}
	cached := NewCachedSource(src, NewMemoryCache(8, time.Minute))
	ctx := context.Background()
	period := testPeriod(t)

	_, err := cached.Refresh(ctx, period)
	require.NoError(t, err)
	_, err = cached.FetchRecords(ctx, period)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls), "refresh warms the cache")

	cached.Invalidate(ctx, period)
	_, err = cached.FetchRecords(ctx, period)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&src.calls))
}

func TestMemoryCache_Expires(t *testing.T) {
	c := NewMemoryCache(8, 20*time.Millisecond)
	ctx := context.Background()

	c.Set(ctx, "k", sampleRecords())
	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)

	time.Sleep(60 * time.Millisecond)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryCache_VersionMismatchInvalidates(t *testing.T) {
	c := NewMemoryCache(8, time.Minute)
	ctx := context.Background()
	c.lru.Add("k", &cachedRecords{Version: "0", Records: sampleRecords()})

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	_, present := c.lru.Peek("k")
	assert.False(t, present)
}

func TestRedisCache_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	var container testcontainers.Container
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		container, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "redis:7-alpine",
				ExposedPorts: []string{"6379/tcp"},
				WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
			},
			Started: true,
		})
	}()
	if err != nil || container == nil {
		t.Skipf("Skipping integration test: redis not available: %v", err)
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := NewRedisClient(ctx, addr, "", 0)
	require.NoError(t, err)
	defer client.Close()

	cache := NewRedisCache(client, time.Minute)

	t.Run("MissThenHit", func(t *testing.T) {
		_, ok := cache.Get(ctx, "affiliate:records:missing")
		assert.False(t, ok)

		cache.Set(ctx, "affiliate:records:k1", sampleRecords())
		got, ok := cache.Get(ctx, "affiliate:records:k1")
		require.True(t, ok)
		require.Len(t, got, 2)
		assert.Equal(t, "alice", got[0].Username)
		assert.True(t, decimal.RequireFromString("10.5").Equal(got[0].WageredAmount))
	})

	t.Run("TTLApplied", func(t *testing.T) {
		cache.Set(ctx, "affiliate:records:ttl", sampleRecords())
		ttl, err := client.TTL(ctx, "affiliate:records:ttl").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("CorruptEntryIsMiss", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "affiliate:records:bad", "not json", time.Minute).Err())
		_, ok := cache.Get(ctx, "affiliate:records:bad")
		assert.False(t, ok)
		assert.True(t, errors.Is(client.Get(ctx, "affiliate:records:bad").Err(), redis.Nil))
	})

	t.Run("WithCachedSource", func(t *testing.T) {
		src := &countingSource{records: sampleRecords()}
		cached := NewCachedSource(src, cache)

		_, err := cached.FetchRecords(ctx, testPeriod(t))
		require.NoError(t, err)
		_, err = cached.FetchRecords(ctx, testPeriod(t))
		require.NoError(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))
	})
}
