package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/casynetic/WagerBoard_Go/internal/database"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		terminate = setupContainer(context.Background())
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

// setupContainer starts postgres, connects testPool and applies migrations.
// Failures leave testPool nil so integration tests skip.
func setupContainer(ctx context.Context) func() {
	// Handle potential panics from testcontainers
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return func() {}
	}
	terminate := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		return terminate
	}

	pool, err := database.NewPool(ctx, database.PoolConfig{
		ConnString:  connStr,
		MaxConns:    10,
		MaxIdleTime: 30 * time.Minute,
		MaxLifetime: time.Hour,
		AppName:     "wagerboard-test",
	})
	if err != nil {
		fmt.Printf("WARNING: Failed to connect to database: %v\n", err)
		return terminate
	}

	if err := database.Migrate(ctx, pool); err != nil {
		fmt.Printf("WARNING: Failed to apply migrations: %v\n", err)
		pool.Close()
		return terminate
	}

	testPool = pool
	return terminate
}

// requireDB skips the test when no database is available and empties every table.
func requireDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}

	_, err := testPool.Exec(context.Background(),
		`TRUNCATE account_links, milestones, leaderboard_periods, lottery_winners, lottery_draws`)
	if err != nil {
		t.Fatalf("failed to reset tables: %v", err)
	}
	return testPool
}
