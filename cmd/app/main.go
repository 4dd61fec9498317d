package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/casynetic/WagerBoard_Go/internal/bootstrap"
	"github.com/casynetic/WagerBoard_Go/internal/config"
	"github.com/casynetic/WagerBoard_Go/internal/database"
	"github.com/casynetic/WagerBoard_Go/internal/server"
)

// @title WagerBoard API
// @version 1.0
// @description Affiliate wager leaderboards, ticket lotteries and milestone roles.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		slog.Warn("Configuration warning", "warning", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, database.PoolConfig{
		ConnString:  cfg.GetDBConnString(),
		MaxConns:    cfg.DBMaxConns,
		MaxIdleTime: cfg.DBMaxConnIdleTime,
		MaxLifetime: cfg.DBMaxConnLifetime,
		AppName:     cfg.ServiceName,
	})
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := database.Migrate(ctx, dbPool); err != nil {
		return err
	}

	records, err := bootstrap.InitializeRecordSource(ctx, cfg)
	if err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	services, err := bootstrap.InitializeServices(cfg, repos, records)
	if err != nil {
		return err
	}

	if _, err := bootstrap.SeedMilestones(ctx, cfg.MilestoneSeedFile, services.Milestone); err != nil {
		return err
	}

	sched, err := bootstrap.StartScheduler(cfg, services, records)
	if err != nil {
		return err
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, services)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:    srv,
		Scheduler: sched,
		Redis:     records.Redis,
	})

	return err
}
