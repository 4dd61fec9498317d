package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/casynetic/WagerBoard_Go/internal/concurrency"
	"github.com/casynetic/WagerBoard_Go/internal/database"
	"github.com/casynetic/WagerBoard_Go/internal/handler"
	"github.com/casynetic/WagerBoard_Go/internal/leaderboard"
	"github.com/casynetic/WagerBoard_Go/internal/linking"
	"github.com/casynetic/WagerBoard_Go/internal/lottery"
	"github.com/casynetic/WagerBoard_Go/internal/metrics"
	"github.com/casynetic/WagerBoard_Go/internal/milestone"
)

const (
	maxRequestBody    = 1 << 20
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 2 * time.Minute
)

// Services groups everything the router dispatches to
type Services struct {
	Leaderboard  leaderboard.Service
	Lottery      lottery.Service
	Milestone    milestone.Service
	Linking      linking.Service
	RecordCache  handler.RecordCache
	RefreshLocks *concurrency.LockManager

	// ReadyChecks are extra dependencies reported by /readyz (e.g. redis)
	ReadyChecks map[string]handler.HealthChecker
}

// Server is the core HTTP API
type Server struct {
	httpServer *http.Server
}

// NewServer builds the API server listening on port
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(apiKey, trustedProxies, dbPool, svc),
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
		},
	}
}

// NewRouter builds the HTTP routing tree
func NewRouter(apiKey string, trustedProxies []string, dbPool database.Pool, svc Services) http.Handler {
	r := chi.NewRouter()

	detector := NewSuspiciousActivityDetector()

	// outermost first
	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(maxRequestBody))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool, svc.ReadyChecks))

	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	leaderboardHandlers := handler.NewLeaderboardHandlers(svc.Leaderboard)
	lotteryHandlers := handler.NewLotteryHandlers(svc.Lottery, svc.Leaderboard, svc.Linking)
	milestoneHandlers := handler.NewMilestoneHandlers(svc.Milestone)
	linkingHandlers := handler.NewLinkingHandlers(svc.Linking)
	adminCacheHandler := handler.NewAdminCacheHandler(svc.RecordCache, svc.Leaderboard, svc.RefreshLocks)
	adminMetricsHandler := handler.NewAdminMetricsHandler(nil)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/leaderboard", func(r chi.Router) {
			r.Get("/", leaderboardHandlers.HandleGetLeaderboard())
			r.Get("/rank", leaderboardHandlers.HandleGetRank())
			r.Get("/info", leaderboardHandlers.HandleGetInfo())
		})

		r.Route("/lottery", func(r chi.Router) {
			r.Get("/tickets", lotteryHandlers.HandleGetTickets())
			r.Get("/draw", lotteryHandlers.HandleGetDraw())
		})

		r.Route("/milestones", func(r chi.Router) {
			r.Get("/", milestoneHandlers.HandleList())
			r.Post("/progress", milestoneHandlers.HandleProgress())
		})

		r.Route("/link", func(r chi.Router) {
			r.Post("/", linkingHandlers.HandleLink())
			r.Post("/unlink", linkingHandlers.HandleUnlink())
			r.Get("/status", linkingHandlers.HandleStatus())
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/leaderboard/period", leaderboardHandlers.HandleSetPeriod())
			r.Post("/lottery/draw", lotteryHandlers.HandleDraw())

			r.Route("/milestones", func(r chi.Router) {
				r.Post("/", milestoneHandlers.HandleCreate())
				r.Put("/{id}", milestoneHandlers.HandleUpdate())
				r.Delete("/{id}", milestoneHandlers.HandleDelete())
			})

			r.Post("/cache/refresh", adminCacheHandler.HandleRefresh)
			r.Get("/metrics", adminMetricsHandler.HandleGetMetrics)
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// Start blocks serving until Stop
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop drains in-flight requests
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
