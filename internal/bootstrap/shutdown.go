package bootstrap

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/casynetic/WagerBoard_Go/internal/scheduler"
	"github.com/casynetic/WagerBoard_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil members are skipped.
type ShutdownComponents struct {
	Server    *server.Server
	Scheduler *scheduler.Scheduler
	Redis     *redis.Client
}

// GracefulShutdown stops the HTTP server first so no new work arrives,
// then background jobs, then shared clients. Errors are logged and do not
// stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Scheduler != nil {
		if err := components.Scheduler.Stop(); err != nil {
			slog.Error(LogMsgSchedulerStopFailed, "error", err)
		}
	}

	if components.Redis != nil {
		if err := components.Redis.Close(); err != nil {
			slog.Error(LogMsgRedisCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
