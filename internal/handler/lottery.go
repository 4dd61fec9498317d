package handler

import (
	"context"
	"net/http"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
	"github.com/casynetic/WagerBoard_Go/internal/lottery"
)

// PeriodResolver picks the period a request refers to
type PeriodResolver interface {
	ResolvePeriod(ctx context.Context, start, end string) (domain.Period, error)
}

// UsernameResolver maps a platform identity to an affiliate username
type UsernameResolver interface {
	Resolve(ctx context.Context, platform, platformID, fallback string) (string, error)
}

// LotteryHandlers contains handlers for the ticket lottery
type LotteryHandlers struct {
	svc      lottery.Service
	periods  PeriodResolver
	resolver UsernameResolver
}

// NewLotteryHandlers creates new lottery handlers
func NewLotteryHandlers(svc lottery.Service, periods PeriodResolver, resolver UsernameResolver) *LotteryHandlers {
	return &LotteryHandlers{svc: svc, periods: periods, resolver: resolver}
}

// DrawLotteryRequest is the request body for drawing winners
type DrawLotteryRequest struct {
	Start   string `json:"start,omitempty" validate:"omitempty,isodate"`
	End     string `json:"end,omitempty" validate:"omitempty,isodate"`
	Winners int    `json:"winners,omitempty" validate:"omitempty,min=1,max=25"`
	Seed    *int64 `json:"seed,omitempty"`
	DrawnBy string `json:"drawn_by,omitempty" validate:"max=100"`
}

// HandleGetTickets returns a user's tickets for the current period
// @Summary Get lottery tickets
// @Tags lottery
// @Produce json
// @Param platform query string false "Platform (discord, kick)"
// @Param platform_id query string false "Platform user id"
// @Param username query string false "Fallback affiliate username"
// @Success 200 {object} domain.UserTickets
// @Failure 400 {object} ErrorResponse
// @Router /lottery/tickets [get]
func (h *LotteryHandlers) HandleGetTickets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		period, err := ResolvePeriodParam(r, h.periods)
		if err != nil {
			respondServiceError(w, r, "Resolve period", err)
			return
		}

		id := GetIdentityParams(r)
		username, err := h.resolver.Resolve(ctx, id.Platform, id.PlatformID, id.Username)
		if err != nil {
			respondServiceError(w, r, "Resolve username", err)
			return
		}

		tickets, err := h.svc.Tickets(ctx, period, username)
		if err != nil {
			respondServiceError(w, r, "Get tickets", err)
			return
		}
		respondJSON(w, http.StatusOK, tickets)
	}
}

// HandleDraw draws and persists the winners for a period
// @Summary Draw lottery
// @Description Weighted draw without replacement. A period can only be drawn once.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body DrawLotteryRequest true "Draw parameters"
// @Success 201 {object} domain.LotteryDraw
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /admin/lottery/draw [post]
func (h *LotteryHandlers) HandleDraw() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DrawLotteryRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Draw lottery"); err != nil {
			return
		}

		period, err := h.periods.ResolvePeriod(r.Context(), req.Start, req.End)
		if err != nil {
			respondServiceError(w, r, "Resolve period", err)
			return
		}

		draw, err := h.svc.Draw(r.Context(), lottery.DrawRequest{
			Period:  period,
			Winners: req.Winners,
			Seed:    req.Seed,
			DrawnBy: req.DrawnBy,
		})
		if err != nil {
			respondServiceError(w, r, "Draw lottery", err)
			return
		}
		respondJSON(w, http.StatusCreated, draw)
	}
}

// HandleGetDraw returns the persisted draw for the current or an explicit period
// @Summary Get lottery draw
// @Tags lottery
// @Produce json
// @Success 200 {object} domain.LotteryDraw
// @Failure 404 {object} ErrorResponse
// @Router /lottery/draw [get]
func (h *LotteryHandlers) HandleGetDraw() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := ResolvePeriodParam(r, h.periods)
		if err != nil {
			respondServiceError(w, r, "Resolve period", err)
			return
		}

		draw, err := h.svc.LatestDraw(r.Context(), period)
		if err != nil {
			respondServiceError(w, r, "Get lottery draw", err)
			return
		}
		respondJSON(w, http.StatusOK, draw)
	}
}
