package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the part of the connection pool the readiness probe needs
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// PoolConfig sizes the PostgreSQL connection pool
type PoolConfig struct {
	ConnString  string
	MaxConns    int
	MaxIdleTime time.Duration
	MaxLifetime time.Duration
	// AppName shows up in pg_stat_activity
	AppName string
}

// NewPool opens a PostgreSQL pool and verifies it with a ping
func NewPool(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	pgCfg, err := pgxpool.ParseConfig(cfg.ConnString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	applyPoolConfig(pgCfg, cfg)

	pool, err := pgxpool.NewWithConfig(ctx, pgCfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Info(LogMsgSuccessfullyConnectedToDatabase,
		"max_conns", pgCfg.MaxConns,
		"app", pgCfg.ConnConfig.RuntimeParams[RuntimeParamAppName])
	return pool, nil
}

func applyPoolConfig(pgCfg *pgxpool.Config, cfg PoolConfig) {
	maxConns := cfg.MaxConns
	switch {
	case maxConns <= 0:
		maxConns = DefaultMaxConnections
	case maxConns > math.MaxInt32:
		maxConns = math.MaxInt32
	}
	pgCfg.MaxConns = int32(maxConns)
	pgCfg.MinConns = min(DefaultMinConnections, pgCfg.MaxConns)
	pgCfg.MaxConnIdleTime = cfg.MaxIdleTime
	pgCfg.MaxConnLifetime = cfg.MaxLifetime
	pgCfg.HealthCheckPeriod = HealthCheckPeriod

	appName := cfg.AppName
	if appName == "" {
		appName = DefaultAppName
	}
	pgCfg.ConnConfig.RuntimeParams[RuntimeParamAppName] = appName
}
