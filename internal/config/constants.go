package config

import "time"

// Default values for optional configuration
const (
	DefaultPort               = 8080
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
	DefaultServiceName        = "wagerboard"
	DefaultVersion            = "dev"
	DefaultEnvironment        = "dev"
	DefaultLogDir             = "logs"
	DefaultDBMaxConns         = 20
	DefaultDBMaxConnIdleTime  = 5 * time.Minute
	DefaultDBMaxConnLifetime  = 30 * time.Minute
	DefaultAffiliateAPIURL    = "https://services.rainbet.com"
	DefaultAffiliateTimeout   = 10 * time.Second
	DefaultAffiliateRetries   = 3
	DefaultCacheBackend       = CacheBackendMemory
	DefaultCacheTTL           = 2 * time.Minute
	DefaultCacheSize          = 64
	DefaultRedisAddr          = "localhost:6379"
	DefaultTicketUnit         = "100"
	DefaultMilestoneStartDate = "2025-04-15"
	DefaultRatioPolicy        = "highest"
	DefaultCacheWarmInterval  = 5 * time.Minute
)

// Affiliate cache backends
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)
