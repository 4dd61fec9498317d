package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
	"github.com/casynetic/WagerBoard_Go/internal/leaderboard"
	"github.com/casynetic/WagerBoard_Go/internal/logger"
)

// LeaderboardHandlers contains handlers for wager standings
type LeaderboardHandlers struct {
	svc leaderboard.Service
}

// NewLeaderboardHandlers creates new leaderboard handlers
func NewLeaderboardHandlers(svc leaderboard.Service) *LeaderboardHandlers {
	return &LeaderboardHandlers{svc: svc}
}

// LeaderboardResponse is the ranked top of a period
type LeaderboardResponse struct {
	Period  domain.Period             `json:"period"`
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// RankResponse is one user's standing in a period
type RankResponse struct {
	Period domain.Period           `json:"period"`
	Entry  domain.LeaderboardEntry `json:"entry"`
}

// SetPeriodRequest is the request body for configuring the current period
type SetPeriodRequest struct {
	Start          string `json:"start" validate:"required,isodate"`
	End            string `json:"end" validate:"required,isodate"`
	PrizeFirst     string `json:"prize_first" validate:"max=100"`
	PrizeSecond    string `json:"prize_second" validate:"max=100"`
	PrizeThird     string `json:"prize_third" validate:"max=100"`
	BonusThreshold string `json:"bonus_threshold,omitempty" validate:"omitempty,wager"`
	BonusReward    string `json:"bonus_reward,omitempty" validate:"max=100"`
	UpdatedBy      string `json:"updated_by,omitempty" validate:"max=100"`
}

// HandleGetLeaderboard returns the top entries for the current or an explicit period
// @Summary Get leaderboard
// @Description Returns the top wagerers. Without start/end the configured current period is used.
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Number of entries (default 5, max 50)"
// @Param start query string false "Period start (YYYY-MM-DD)"
// @Param end query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} LeaderboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /leaderboard [get]
func (h *LeaderboardHandlers) HandleGetLeaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := GetLimitParam(r, w)
		if !ok {
			return
		}

		period, err := ResolvePeriodParam(r, h.svc)
		if err != nil {
			respondServiceError(w, r, "Resolve period", err)
			return
		}

		entries, err := h.svc.Leaderboard(r.Context(), period, limit)
		if err != nil {
			respondServiceError(w, r, "Get leaderboard", err)
			return
		}

		respondJSON(w, http.StatusOK, LeaderboardResponse{Period: period, Entries: entries})
	}
}

// HandleGetRank returns the rank of a linked identity or an explicit username
// @Summary Get rank
// @Description Returns a user's rank in the current period. Linked accounts take precedence over username.
// @Tags leaderboard
// @Produce json
// @Param platform query string false "Platform (discord, kick)"
// @Param platform_id query string false "Platform user id"
// @Param username query string false "Fallback affiliate username"
// @Success 200 {object} RankResponse
// @Failure 404 {object} ErrorResponse
// @Router /leaderboard/rank [get]
func (h *LeaderboardHandlers) HandleGetRank() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := GetIdentityParams(r)

		period, err := ResolvePeriodParam(r, h.svc)
		if err != nil {
			respondServiceError(w, r, "Resolve period", err)
			return
		}

		entry, err := h.svc.Rank(r.Context(), period, id.Platform, id.PlatformID, id.Username)
		if err != nil {
			respondServiceError(w, r, "Get rank", err)
			return
		}

		respondJSON(w, http.StatusOK, RankResponse{Period: period, Entry: *entry})
	}
}

// HandleGetInfo returns the current period, prizes and bonus qualifiers
// @Summary Leaderboard info
// @Tags leaderboard
// @Produce json
// @Success 200 {object} domain.LeaderboardInfo
// @Failure 404 {object} ErrorResponse
// @Router /leaderboard/info [get]
func (h *LeaderboardHandlers) HandleGetInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := h.svc.Info(r.Context())
		if err != nil {
			respondServiceError(w, r, "Get leaderboard info", err)
			return
		}
		respondJSON(w, http.StatusOK, info)
	}
}

// HandleSetPeriod configures the current period and its prizes
// @Summary Set leaderboard period
// @Tags admin
// @Accept json
// @Produce json
// @Param request body SetPeriodRequest true "Period and prizes"
// @Success 200 {object} domain.PeriodConfig
// @Failure 400 {object} ErrorResponse
// @Router /admin/leaderboard/period [post]
func (h *LeaderboardHandlers) HandleSetPeriod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SetPeriodRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set leaderboard period"); err != nil {
			return
		}

		period, err := domain.NewPeriod(req.Start, req.End)
		if err != nil {
			respondServiceError(w, r, "Set leaderboard period", err)
			return
		}

		cfg := domain.PeriodConfig{
			Period: period,
			Prizes: domain.Prizes{
				First:       req.PrizeFirst,
				Second:      req.PrizeSecond,
				Third:       req.PrizeThird,
				BonusReward: req.BonusReward,
			},
			UpdatedBy: req.UpdatedBy,
		}
		if req.BonusThreshold != "" {
			threshold, err := decimal.NewFromString(req.BonusThreshold)
			if err != nil {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidAmount)
				return
			}
			cfg.Prizes.BonusThreshold = &threshold
		}

		saved, err := h.svc.SetPeriod(r.Context(), cfg)
		if err != nil {
			respondServiceError(w, r, "Set leaderboard period", err)
			return
		}

		log.Info("Leaderboard period updated", "start", req.Start, "end", req.End)
		respondJSON(w, http.StatusOK, saved)
	}
}
