package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// ExpectedEnvSchemaVersion is the .env layout this build understands
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must be present before the API starts
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"API_KEY",
	"AFFILIATE_API_KEY",
}

// Example values shipped in .env.example
const (
	exampleDBPassword   = "change_this_secure_password"
	exampleAPIKey       = "generate_with_openssl_rand_hex_32"
	exampleAffiliateKey = "your_affiliate_key"
)

// envWarning inspects the environment and returns a warning, or "" when fine
type envWarning func() string

var envWarnings = []envWarning{
	exampleValueWarning("DB_PASSWORD", exampleDBPassword, "please use a secure password"),
	exampleValueWarning("API_KEY", exampleAPIKey, "generate a secure key with: openssl rand -hex 32"),
	exampleValueWarning("AFFILIATE_API_KEY", exampleAffiliateKey, "wager data requests will be rejected upstream"),
	redisAddrWarning,
	cacheWarmWarning,
	seedFileWarning,
}

// ValidateEnv checks the schema version and that every required variable is set
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	}
	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	var missing []string
	for _, envVar := range RequiredEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and then collects non-fatal findings
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, check := range envWarnings {
		if w := check(); w != "" {
			warnings = append(warnings, w)
		}
	}
	return warnings, nil
}

func exampleValueWarning(key, example, hint string) envWarning {
	return func() string {
		if os.Getenv(key) == example {
			return fmt.Sprintf("%s appears to be using the example value - %s", key, hint)
		}
		return ""
	}
}

func redisAddrWarning() string {
	if strings.EqualFold(os.Getenv("AFFILIATE_CACHE_BACKEND"), CacheBackendRedis) && os.Getenv("REDIS_ADDR") == "" {
		return "AFFILIATE_CACHE_BACKEND is redis but REDIS_ADDR is not set - falling back to " + DefaultRedisAddr
	}
	return ""
}

// minCacheWarmInterval keeps the warm job from hammering the affiliate API
const minCacheWarmInterval = 30 * time.Second

func cacheWarmWarning() string {
	interval := getEnvAsDuration("CACHE_WARM_INTERVAL", DefaultCacheWarmInterval)
	if interval > 0 && interval < minCacheWarmInterval {
		return fmt.Sprintf("CACHE_WARM_INTERVAL (%s) is below %s - the affiliate API may rate limit the warm job", interval, minCacheWarmInterval)
	}
	return ""
}

func seedFileWarning() string {
	path := os.Getenv("MILESTONE_SEED_FILE")
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Sprintf("MILESTONE_SEED_FILE %s is not readable - startup will fail: %v", path, err)
	}
	return ""
}
