package database

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/casynetic/WagerBoard_Go/internal/testing/leaktest"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testDBConnString, terminate = setupContainer(context.Background())
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupContainer(ctx context.Context) (string, func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("wagerboard"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		return "", func() {}
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

func openTestPool(t *testing.T, maxConns int) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}

	pool, err := NewPool(context.Background(), PoolConfig{
		ConnString:  testDBConnString,
		MaxConns:    maxConns,
		MaxIdleTime: time.Minute,
		MaxLifetime: 5 * time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestApplyPoolConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      PoolConfig
		wantMax  int32
		wantMin  int32
		wantName string
	}{
		{"defaults", PoolConfig{}, DefaultMaxConnections, DefaultMinConnections, DefaultAppName},
		{"single connection", PoolConfig{MaxConns: 1, AppName: "bot"}, 1, 1, "bot"},
		{"explicit", PoolConfig{MaxConns: 25, AppName: "api"}, 25, DefaultMinConnections, "api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pgCfg, err := pgxpool.ParseConfig("postgres://u:p@localhost:5432/db")
			require.NoError(t, err)

			tt.cfg.MaxIdleTime = 2 * time.Minute
			applyPoolConfig(pgCfg, tt.cfg)

			assert.Equal(t, tt.wantMax, pgCfg.MaxConns)
			assert.Equal(t, tt.wantMin, pgCfg.MinConns)
			assert.Equal(t, 2*time.Minute, pgCfg.MaxConnIdleTime)
			assert.Equal(t, HealthCheckPeriod, pgCfg.HealthCheckPeriod)
			assert.Equal(t, tt.wantName, pgCfg.ConnConfig.RuntimeParams[RuntimeParamAppName])
		})
	}
}

func TestNewPool_InvalidConnString(t *testing.T) {
	_, err := NewPool(context.Background(), PoolConfig{ConnString: "postgres://%zz"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

func TestMigrate(t *testing.T) {
	pool := openTestPool(t, 5)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, pool))
	require.NoError(t, Migrate(ctx, pool), "second run should be a no-op")

	for _, table := range []string{"account_links", "milestones", "leaderboard_periods", "lottery_draws", "lottery_winners"} {
		var exists bool
		err := pool.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", table).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "table %s should exist", table)
	}

	var appName string
	require.NoError(t, pool.QueryRow(ctx, "SELECT current_setting('application_name')").Scan(&appName))
	assert.Equal(t, DefaultAppName, appName)
}

func TestMigrateFS_BrokenMigration(t *testing.T) {
	pool := openTestPool(t, 2)

	broken := fstest.MapFS{
		"9001_broken.sql": &fstest.MapFile{Data: []byte("-- +goose Up\nCREATE TABLE (;\n")},
	}
	err := MigrateFS(context.Background(), pool, broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToApplyMigrations)
}

// Concurrent milestone inserts with the same amount must leave one row and
// release every connection.
func TestPool_ConcurrentMilestoneInserts(t *testing.T) {
	pool := openTestPool(t, 10)
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, pool))
	_, err := pool.Exec(ctx, "DELETE FROM milestones")
	require.NoError(t, err)

	checker := leaktest.NewGoroutineChecker(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = pool.Exec(ctx,
				"INSERT INTO milestones (amount, reward_role, reward_text) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING",
				"1000.00", "role-1", "Bronze")
		}()
	}
	wg.Wait()

	var count int
	require.NoError(t, pool.QueryRow(ctx, "SELECT count(*) FROM milestones WHERE amount = 1000").Scan(&count))
	assert.Equal(t, 1, count)
	assert.Equal(t, int32(0), pool.Stat().AcquiredConns(), "All connections should be released")

	checker.Check(2)
}
