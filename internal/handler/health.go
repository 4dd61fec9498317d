package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/casynetic/WagerBoard_Go/internal/database"
)

const readinessTimeout = 2 * time.Second

// Component and overall readiness states
const (
	statusOK          = "ok"
	statusUnavailable = "unavailable"
)

// HealthResponse is the body of the health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	// Components reports each readiness dependency by name
	Components map[string]string `json:"components,omitempty"`
}

// HealthChecker is a dependency readiness probe
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// HealthCheckerFunc adapts a function to HealthChecker
type HealthCheckerFunc func(ctx context.Context) error

// CheckHealth calls f(ctx)
func (f HealthCheckerFunc) CheckHealth(ctx context.Context) error { return f(ctx) }

// HandleHealthz reports liveness
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: statusOK})
	}
}

// HandleReadyz probes the database and every named dependency (e.g. the shared
// record cache) and reports the state of each. Any failure yields 503.
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(dbPool database.Pool, checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		resp := HealthResponse{Status: statusOK, Components: map[string]string{"database": statusOK}}
		var failed []string

		if err := dbPool.Ping(ctx); err != nil {
			slog.Error("Readiness check failed", "component", "database", "error", err)
			resp.Components["database"] = statusUnavailable
			failed = append(failed, "database")
		}

		names := make([]string, 0, len(checks))
		for name := range checks {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			resp.Components[name] = statusOK
			if err := checks[name].CheckHealth(ctx); err != nil {
				slog.Error("Readiness check failed", "component", name, "error", err)
				resp.Components[name] = statusUnavailable
				failed = append(failed, name)
			}
		}

		if len(failed) == 0 {
			respondJSON(w, http.StatusOK, resp)
			return
		}

		resp.Status = statusUnavailable
		if failed[0] == "database" {
			resp.Message = "database connection failed"
		} else {
			resp.Message = failed[0] + " check failed"
		}
		respondJSON(w, http.StatusServiceUnavailable, resp)
	}
}
