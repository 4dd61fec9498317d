package handler

import (
	"net/http"
	"strings"

	"github.com/casynetic/WagerBoard_Go/internal/linking"
	"github.com/casynetic/WagerBoard_Go/internal/logger"
)

// LinkingHandlers contains handlers for account linking
type LinkingHandlers struct {
	svc linking.Service
}

// NewLinkingHandlers creates new linking handlers
func NewLinkingHandlers(svc linking.Service) *LinkingHandlers {
	return &LinkingHandlers{svc: svc}
}

// LinkRequest is the request body for linking an affiliate account
type LinkRequest struct {
	Platform          string `json:"platform" validate:"required,platform"`
	PlatformID        string `json:"platform_id" validate:"required,max=64"`
	AffiliateUsername string `json:"affiliate_username" validate:"required,max=64,excludesall=\x00\n\r\t"`
	KickUsername      string `json:"kick_username,omitempty" validate:"max=64,excludesall=\x00\n\r\t"`
}

// UnlinkRequest is the request body for unlinking
type UnlinkRequest struct {
	Platform   string `json:"platform" validate:"required,platform"`
	PlatformID string `json:"platform_id" validate:"required,max=64"`
}

// HandleLink handles POST /link
// @Summary Link affiliate account
// @Tags linking
// @Accept json
// @Produce json
// @Param request body LinkRequest true "Identity and affiliate username"
// @Success 200 {object} domain.AccountLink
// @Failure 403 {object} ErrorResponse
// @Router /link [post]
func (h *LinkingHandlers) HandleLink() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LinkRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Link account"); err != nil {
			return
		}

		link, err := h.svc.Link(r.Context(), strings.ToLower(req.Platform), req.PlatformID, req.AffiliateUsername, req.KickUsername)
		if err != nil {
			respondServiceError(w, r, "Link account", err)
			return
		}
		respondJSON(w, http.StatusOK, link)
	}
}

// HandleUnlink handles POST /link/unlink
// @Summary Unlink affiliate account
// @Tags linking
// @Accept json
// @Produce json
// @Param request body UnlinkRequest true "Identity"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /link/unlink [post]
func (h *LinkingHandlers) HandleUnlink() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req UnlinkRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Unlink account"); err != nil {
			return
		}

		if err := h.svc.Unlink(r.Context(), strings.ToLower(req.Platform), req.PlatformID); err != nil {
			respondServiceError(w, r, "Unlink account", err)
			return
		}

		log.Debug("Unlink handled", "platform", req.Platform)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgAccountUnlinked})
	}
}

// HandleStatus handles GET /link/status
// @Summary Linked account
// @Tags linking
// @Produce json
// @Param platform query string true "Platform"
// @Param platform_id query string true "Platform user id"
// @Success 200 {object} domain.AccountLink
// @Failure 404 {object} ErrorResponse
// @Router /link/status [get]
func (h *LinkingHandlers) HandleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		platform, ok := GetQueryParam(r, w, "platform")
		if !ok {
			return
		}
		platformID, ok := GetQueryParam(r, w, "platform_id")
		if !ok {
			return
		}

		link, err := h.svc.Get(r.Context(), strings.ToLower(platform), platformID)
		if err != nil {
			respondServiceError(w, r, "Get link", err)
			return
		}
		respondJSON(w, http.StatusOK, link)
	}
}
