package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("API_KEY", "test-key")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "wagerboard", cfg.DBName)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Empty(t, cfg.TrustedProxies)
	assert.Equal(t, DefaultCacheWarmInterval, cfg.CacheWarmInterval)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnvVars(t)
	env := map[string]string{
		"PORT":            "3000",
		"API_KEY":         "bot-key",
		"LOG_LEVEL":       "debug",
		"LOG_FORMAT":      "json",
		"ENVIRONMENT":     "prod",
		"DB_USER":         "wager",
		"DB_PASSWORD":     "s3cret",
		"DB_HOST":         "db",
		"DB_PORT":         "5433",
		"DB_NAME":         "board",
		"TRUSTED_PROXIES": "10.0.0.1, 10.0.0.2",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "bot-key", cfg.APIKey)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
	assert.Equal(t, "postgres://wager:s3cret@db:5433/board?sslmode=disable", cfg.GetDBConnString())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing api key", map[string]string{}, "API_KEY"},
		{"port not a number", map[string]string{"API_KEY": "k", "PORT": "eighty"}, "invalid PORT"},
		{"port float", map[string]string{"API_KEY": "k", "PORT": "8080.5"}, "invalid PORT"},
		{"port empty", map[string]string{"API_KEY": "k", "PORT": ""}, "invalid PORT"},
		{"zero ticket unit", map[string]string{"API_KEY": "k", "TICKET_UNIT": "0"}, "TICKET_UNIT"},
		{"negative ticket unit", map[string]string{"API_KEY": "k", "TICKET_UNIT": "-100"}, "TICKET_UNIT"},
		{"start date format", map[string]string{"API_KEY": "k", "MILESTONE_START_DATE": "15/04/2025"}, "MILESTONE_START_DATE"},
		{"unknown cache backend", map[string]string{"API_KEY": "k", "AFFILIATE_CACHE_BACKEND": "memcached"}, "AFFILIATE_CACHE_BACKEND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_EngineConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "https://services.rainbet.com", cfg.AffiliateAPIURL)
		assert.Equal(t, 10*time.Second, cfg.AffiliateTimeout)
		assert.Equal(t, CacheBackendMemory, cfg.CacheBackend)
		assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
		assert.True(t, decimal.NewFromInt(100).Equal(cfg.TicketUnit))
		assert.Equal(t, "2025-04-15", cfg.MilestoneStartDate.Format("2006-01-02"))
		assert.Equal(t, "highest", cfg.MilestoneRatioPolicy)
		assert.False(t, cfg.LinkRequireAffiliate)
	})

	t.Run("custom values", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("AFFILIATE_API_URL", "http://affiliates.local/")
		t.Setenv("AFFILIATE_CACHE_BACKEND", "Redis")
		t.Setenv("REDIS_ADDR", "cache:6379")
		t.Setenv("TICKET_UNIT", "250.5")
		t.Setenv("MILESTONE_START_DATE", "2025-01-01")
		t.Setenv("MILESTONE_RATIO_POLICY", "NEXT")
		t.Setenv("LINK_REQUIRE_AFFILIATE", "true")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "http://affiliates.local", cfg.AffiliateAPIURL, "trailing slash is trimmed")
		assert.Equal(t, CacheBackendRedis, cfg.CacheBackend)
		assert.Equal(t, "cache:6379", cfg.RedisAddr)
		assert.Equal(t, "250.5", cfg.TicketUnit.String())
		assert.Equal(t, 2025, cfg.MilestoneStartDate.Year())
		assert.Equal(t, "next", cfg.MilestoneRatioPolicy)
		assert.True(t, cfg.LinkRequireAffiliate)
	})
}

func TestGetDBConnString_KeepsPasswordVerbatim(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p@ss:word/x", DBHost: "h", DBPort: "5432", DBName: "d"}

	assert.Equal(t, "postgres://u:p@ss:word/x@h:5432/d?sslmode=disable", cfg.GetDBConnString())
}

func clearEnvVars(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"PORT", "API_KEY", "LOG_LEVEL", "LOG_FORMAT", "LOG_DIR",
		"SERVICE_NAME", "VERSION", "ENVIRONMENT",
		"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
		"DB_MAX_CONNS", "DB_MAX_CONN_IDLE_TIME", "DB_MAX_CONN_LIFETIME",
		"AFFILIATE_API_URL", "AFFILIATE_API_KEY", "AFFILIATE_TIMEOUT", "AFFILIATE_RETRIES",
		"AFFILIATE_CACHE_BACKEND", "AFFILIATE_CACHE_TTL", "AFFILIATE_CACHE_SIZE",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"TICKET_UNIT", "MILESTONE_START_DATE", "MILESTONE_RATIO_POLICY",
		"LINK_REQUIRE_AFFILIATE", "CACHE_WARM_INTERVAL", "TRUSTED_PROXIES", "MILESTONE_SEED_FILE",
	} {
		// restore on cleanup, then unset
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
