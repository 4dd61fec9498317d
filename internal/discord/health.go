package discord

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Bot health states
const (
	healthHealthy  = "healthy"
	healthDegraded = "degraded"
)

// HealthStatus is the body of the bot's /health endpoint
type HealthStatus struct {
	Status           string     `json:"status"`
	Uptime           string     `json:"uptime"`
	Connected        bool       `json:"connected"`
	Guilds           int        `json:"guilds"`
	APIReachable     bool       `json:"api_reachable"`
	CommandsReceived int64      `json:"commands_received"`
	LastCommandAt    *time.Time `json:"last_command_at,omitempty"`
}

// commandStats counts dispatched slash commands
type commandStats struct {
	started  time.Time
	received atomic.Int64
	lastNano atomic.Int64
}

func newCommandStats() *commandStats {
	return &commandStats{started: time.Now()}
}

func (c *commandStats) record(at time.Time) {
	c.received.Add(1)
	c.lastNano.Store(at.UnixNano())
}

// snapshot fills the command fields of a status
func (c *commandStats) snapshot(status *HealthStatus) {
	status.Uptime = time.Since(c.started).Round(time.Second).String()
	status.CommandsReceived = c.received.Load()
	if n := c.lastNano.Load(); n > 0 {
		last := time.Unix(0, n).UTC()
		status.LastCommandAt = &last
	}
}

// Health reports gateway, API and command state
func (b *Bot) Health() HealthStatus {
	status := HealthStatus{Status: healthHealthy}

	if b.Session != nil && b.Session.State != nil {
		status.Connected = b.Session.DataReady
		status.Guilds = len(b.Session.State.Guilds)
	}
	status.APIReachable = b.Client != nil && b.Client.Ping() == nil
	if b.Registry != nil {
		b.Registry.stats.snapshot(&status)
	}

	if !status.Connected || !status.APIReachable {
		status.Status = healthDegraded
	}
	return status
}

// HandleHealth serves Bot.Health, with 503 while degraded
func (h *HTTPServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := h.bot.Health()

	w.Header().Set("Content-Type", "application/json")
	if status.Status != healthHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(status)
}
