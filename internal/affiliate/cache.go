package affiliate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
	"github.com/casynetic/WagerBoard_Go/internal/logger"
	"github.com/casynetic/WagerBoard_Go/internal/metrics"
)

// CacheSchemaVersion is the current version of the cached record layout.
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1"

const cacheKeyPrefix = "affiliate:records:"

// cachedRecords wraps a record snapshot with version metadata
type cachedRecords struct {
	Version  string                   `json:"version"`
	Records  []domain.AffiliateRecord `json:"records"`
	CachedAt time.Time                `json:"cached_at"`
}

// Cache stores record snapshots keyed by period.
type Cache interface {
	Get(ctx context.Context, key string) ([]domain.AffiliateRecord, bool)
	Set(ctx context.Context, key string, records []domain.AffiliateRecord)
	Delete(ctx context.Context, key string)
	Backend() string
}

// CachedSource decorates a Source with a TTL cache. Concurrent misses for
// the same period share a single upstream fetch.
type CachedSource struct {
	source Source
	cache  Cache
	group  singleflight.Group
}

// NewCachedSource wraps source with cache.
func NewCachedSource(source Source, cache Cache) *CachedSource {
	return &CachedSource{source: source, cache: cache}
}

// FetchRecords returns cached records for the period or fetches them.
func (s *CachedSource) FetchRecords(ctx context.Context, period domain.Period) ([]domain.AffiliateRecord, error) {
	key := cacheKey(period)
	if records, ok := s.cache.Get(ctx, key); ok {
		metrics.AffiliateCacheLookups.WithLabelValues(s.cache.Backend(), metrics.CacheHit).Inc()
		return records, nil
	}
	metrics.AffiliateCacheLookups.WithLabelValues(s.cache.Backend(), metrics.CacheMiss).Inc()

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.refresh(ctx, period)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.AffiliateRecord), nil
}

// Refresh fetches the period from upstream and replaces the cached snapshot.
func (s *CachedSource) Refresh(ctx context.Context, period domain.Period) ([]domain.AffiliateRecord, error) {
	v, err, _ := s.group.Do(cacheKey(period), func() (interface{}, error) {
		return s.refresh(ctx, period)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.AffiliateRecord), nil
}

// Invalidate drops the cached snapshot for the period.
func (s *CachedSource) Invalidate(ctx context.Context, period domain.Period) {
	s.cache.Delete(ctx, cacheKey(period))
}

func (s *CachedSource) refresh(ctx context.Context, period domain.Period) ([]domain.AffiliateRecord, error) {
	records, err := s.source.FetchRecords(ctx, period)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, cacheKey(period), records)
	return records, nil
}

func cacheKey(period domain.Period) string {
	return cacheKeyPrefix + period.Key()
}

// MemoryCache is an in-process LRU cache with time-based expiration.
type MemoryCache struct {
	lru *expirable.LRU[string, *cachedRecords]
}

// NewMemoryCache creates a memory cache holding up to size periods for ttl.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		lru: expirable.NewLRU[string, *cachedRecords](size, nil, ttl),
	}
}

// Get returns the records for key if present, unexpired and of the current version.
func (c *MemoryCache) Get(_ context.Context, key string) ([]domain.AffiliateRecord, bool) {
	entry, found := c.lru.Get(key)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return nil, false
	}
	return entry.Records, true
}

// Set stores records under key.
func (c *MemoryCache) Set(_ context.Context, key string, records []domain.AffiliateRecord) {
	c.lru.Add(key, &cachedRecords{
		Version:  CacheSchemaVersion,
		Records:  records,
		CachedAt: time.Now(),
	})
}

// Delete removes key.
func (c *MemoryCache) Delete(_ context.Context, key string) {
	c.lru.Remove(key)
}

// Backend names the cache implementation.
func (c *MemoryCache) Backend() string { return "memory" }

// RedisCache stores JSON snapshots in Redis so several API replicas share them.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed cache with the given TTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

// Get returns the records for key. Redis errors are logged and treated as misses.
func (c *RedisCache) Get(ctx context.Context, key string) ([]domain.AffiliateRecord, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.FromContext(ctx).Warn("Redis cache get failed", "key", key, "error", err)
		}
		return nil, false
	}

	var entry cachedRecords
	if err := json.Unmarshal(data, &entry); err != nil || entry.Version != CacheSchemaVersion {
		c.Delete(ctx, key)
		return nil, false
	}
	return entry.Records, true
}

// Set stores records under key with the cache TTL.
func (c *RedisCache) Set(ctx context.Context, key string, records []domain.AffiliateRecord) {
	data, err := json.Marshal(cachedRecords{
		Version:  CacheSchemaVersion,
		Records:  records,
		CachedAt: time.Now(),
	})
	if err != nil {
		logger.FromContext(ctx).Warn("Redis cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.FromContext(ctx).Warn("Redis cache set failed", "key", key, "error", err)
	}
}

// Delete removes key.
func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.FromContext(ctx).Warn("Redis cache delete failed", "key", key, "error", err)
	}
}

// Backend names the cache implementation.
func (c *RedisCache) Backend() string { return "redis" }
