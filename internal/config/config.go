package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string
	LogDir      string
	APIKey      string // API key for authentication

	// TrustedProxies may set X-Forwarded-For
	TrustedProxies []string

	// Database
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Affiliate API
	AffiliateAPIURL  string
	AffiliateAPIKey  string
	AffiliateTimeout time.Duration
	AffiliateRetries int

	// Affiliate record cache
	CacheBackend  string
	CacheTTL      time.Duration
	CacheSize     int
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Engines
	TicketUnit           decimal.Decimal
	MilestoneStartDate   time.Time
	MilestoneRatioPolicy string
	LinkRequireAffiliate bool

	// MilestoneSeedFile is an optional JSON ladder applied at startup
	MilestoneSeedFile string

	// Scheduler
	CacheWarmInterval time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		APIKey:      getEnv("API_KEY", ""),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "wagerboard"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		AffiliateAPIURL:  strings.TrimRight(getEnv("AFFILIATE_API_URL", DefaultAffiliateAPIURL), "/"),
		AffiliateAPIKey:  getEnv("AFFILIATE_API_KEY", ""),
		AffiliateTimeout: getEnvAsDuration("AFFILIATE_TIMEOUT", DefaultAffiliateTimeout),
		AffiliateRetries: getEnvAsInt("AFFILIATE_RETRIES", DefaultAffiliateRetries),

		CacheBackend:  strings.ToLower(getEnv("AFFILIATE_CACHE_BACKEND", DefaultCacheBackend)),
		CacheTTL:      getEnvAsDuration("AFFILIATE_CACHE_TTL", DefaultCacheTTL),
		CacheSize:     getEnvAsInt("AFFILIATE_CACHE_SIZE", DefaultCacheSize),
		RedisAddr:     getEnv("REDIS_ADDR", DefaultRedisAddr),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		MilestoneRatioPolicy: strings.ToLower(getEnv("MILESTONE_RATIO_POLICY", DefaultRatioPolicy)),
		LinkRequireAffiliate: getEnvAsBool("LINK_REQUIRE_AFFILIATE", false),
		MilestoneSeedFile:    getEnv("MILESTONE_SEED_FILE", ""),

		CacheWarmInterval: getEnvAsDuration("CACHE_WARM_INTERVAL", DefaultCacheWarmInterval),
	}

	cfg.TrustedProxies = getEnvAsList("TRUSTED_PROXIES")

	portStr := getEnv("PORT", strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	unit, err := decimal.NewFromString(getEnv("TICKET_UNIT", DefaultTicketUnit))
	if err != nil || !unit.IsPositive() {
		return nil, fmt.Errorf("invalid TICKET_UNIT value: must be a positive number")
	}
	cfg.TicketUnit = unit

	start, err := time.Parse(domain.DateLayout, getEnv("MILESTONE_START_DATE", DefaultMilestoneStartDate))
	if err != nil {
		return nil, fmt.Errorf("invalid MILESTONE_START_DATE value: %w", err)
	}
	cfg.MilestoneStartDate = start

	switch cfg.CacheBackend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return nil, fmt.Errorf("invalid AFFILIATE_CACHE_BACKEND value %q: use %s or %s", cfg.CacheBackend, CacheBackendMemory, CacheBackendRedis)
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable or returns the default
func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsDuration retrieves a duration environment variable or returns the default
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsBool retrieves a boolean environment variable or returns the default
func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsList splits a comma separated environment variable, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
