package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
	"github.com/casynetic/WagerBoard_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a service failure and writes the mapped user-facing error
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	statusCode, userMsg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if statusCode >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", statusCode)
	}
	respondError(w, statusCode, userMsg)
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError     = "Authentication failed. Please check your API key."
	ErrMsgTooManyRequestsErr  = "Too many requests. Please try again later."
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."

	// Leaderboard messages
	ErrMsgPeriodNotSetError      = "No leaderboard period has been set"
	ErrMsgInvalidPeriodError     = "Invalid leaderboard period. Use YYYY-MM-DD and an end date on or after the start date"
	ErrMsgNotOnLeaderboardError  = "You are not on the leaderboard yet"
	ErrMsgNoLeaderboardDataError = "No leaderboard data is available for this period"
	ErrMsgUpstreamError          = "Wager data is temporarily unavailable. Please try again later."

	// Lottery messages
	ErrMsgNoEligibleError   = "No one has enough tickets to enter the lottery"
	ErrMsgDrawExistsError   = "The lottery for this period has already been drawn"
	ErrMsgDrawNotFoundError = "The lottery for this period has not been drawn yet"

	// Milestone messages
	ErrMsgMilestoneNotFoundError = "Milestone not found"
	ErrMsgMilestoneExistsError   = "A milestone with that amount already exists"
	ErrMsgInvalidMilestoneError  = "Invalid milestone. The amount must be positive and a reward is required"

	// Linking messages
	ErrMsgLinkNotFoundError  = "No linked account found"
	ErrMsgNotAffiliatedError = "That username is not registered under our affiliate code"

	// Platform messages
	ErrMsgInvalidPlatformError = "Invalid platform"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrPeriodNotSet):
		return http.StatusNotFound, ErrMsgPeriodNotSetError
	case errors.Is(err, domain.ErrInvalidPeriod):
		return http.StatusBadRequest, ErrMsgInvalidPeriodError
	case errors.Is(err, domain.ErrNotOnLeaderboard):
		return http.StatusNotFound, ErrMsgNotOnLeaderboardError
	case errors.Is(err, domain.ErrNoLeaderboardData):
		return http.StatusNotFound, ErrMsgNoLeaderboardDataError
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway, ErrMsgUpstreamError
	case errors.Is(err, domain.ErrNoEligibleParticipants):
		return http.StatusUnprocessableEntity, ErrMsgNoEligibleError
	case errors.Is(err, domain.ErrDrawExists):
		return http.StatusConflict, ErrMsgDrawExistsError
	case errors.Is(err, domain.ErrDrawNotFound):
		return http.StatusNotFound, ErrMsgDrawNotFoundError
	case errors.Is(err, domain.ErrMilestoneNotFound):
		return http.StatusNotFound, ErrMsgMilestoneNotFoundError
	case errors.Is(err, domain.ErrMilestoneExists):
		return http.StatusConflict, ErrMsgMilestoneExistsError
	case errors.Is(err, domain.ErrInvalidMilestone):
		return http.StatusBadRequest, ErrMsgInvalidMilestoneError
	case errors.Is(err, domain.ErrLinkNotFound):
		return http.StatusNotFound, ErrMsgLinkNotFoundError
	case errors.Is(err, domain.ErrNotAffiliated):
		return http.StatusForbidden, ErrMsgNotAffiliatedError
	case errors.Is(err, domain.ErrInvalidPlatform):
		return http.StatusBadRequest, ErrMsgInvalidPlatformError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrConnectionTimeout):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
