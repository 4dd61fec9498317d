package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"nil", nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{"period not set", domain.ErrPeriodNotSet, http.StatusNotFound, ErrMsgPeriodNotSetError},
		{"wrapped invalid period", fmt.Errorf("%w: bad", domain.ErrInvalidPeriod), http.StatusBadRequest, ErrMsgInvalidPeriodError},
		{"not on leaderboard", fmt.Errorf("%w: zed", domain.ErrNotOnLeaderboard), http.StatusNotFound, ErrMsgNotOnLeaderboardError},
		{"upstream", fmt.Errorf("%w: status 500", domain.ErrUpstreamUnavailable), http.StatusBadGateway, ErrMsgUpstreamError},
		{"no participants", domain.ErrNoEligibleParticipants, http.StatusUnprocessableEntity, ErrMsgNoEligibleError},
		{"draw exists", domain.ErrDrawExists, http.StatusConflict, ErrMsgDrawExistsError},
		{"milestone exists", domain.ErrMilestoneExists, http.StatusConflict, ErrMsgMilestoneExistsError},
		{"link not found", domain.ErrLinkNotFound, http.StatusNotFound, ErrMsgLinkNotFoundError},
		{"not affiliated", domain.ErrNotAffiliated, http.StatusForbidden, ErrMsgNotAffiliatedError},
		{"invalid platform", fmt.Errorf("%w: \"x\"", domain.ErrInvalidPlatform), http.StatusBadRequest, ErrMsgInvalidPlatformError},
		{"unknown error hides details", errors.New("pq: relation does not exist"), http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	respondJSON(w, http.StatusAccepted, SuccessResponse{Message: "ok"})

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"ok"}`, w.Body.String())
}
