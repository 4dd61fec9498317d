package discord

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	httpReadHeaderTimeout = 5 * time.Second
	httpShutdownTimeout   = 5 * time.Second
)

// HTTPServer exposes the bot's /health and /metrics
type HTTPServer struct {
	server *http.Server
	bot    *Bot
}

// NewHTTPServer builds the side server for port
func NewHTTPServer(port string, bot *Bot) *HTTPServer {
	srv := &HTTPServer{bot: bot}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", srv.HandleHealth)
	r.Handle("/metrics", promhttp.Handler())

	srv.server = &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: httpReadHeaderTimeout,
	}
	return srv
}

// Handler returns the router
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

// Serve listens until ctx is cancelled and then shuts down gracefully
func (s *HTTPServer) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting Discord bot HTTP server", "addr", s.server.Addr)
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
