package handler

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/casynetic/WagerBoard_Go/internal/milestone"
)

// MilestoneHandlers contains handlers for the reward ladder
type MilestoneHandlers struct {
	svc milestone.Service
}

// NewMilestoneHandlers creates new milestone handlers
func NewMilestoneHandlers(svc milestone.Service) *MilestoneHandlers {
	return &MilestoneHandlers{svc: svc}
}

// MilestoneRequest is the request body for creating or replacing a milestone
type MilestoneRequest struct {
	Amount     string `json:"amount" validate:"required,wager"`
	RewardRole string `json:"reward_role" validate:"max=64"`
	RewardText string `json:"reward_text" validate:"max=200"`
}

// ProgressRequest is the request body for evaluating progress
type ProgressRequest struct {
	Platform   string   `json:"platform,omitempty" validate:"omitempty,platform"`
	PlatformID string   `json:"platform_id,omitempty" validate:"max=64"`
	Username   string   `json:"username,omitempty" validate:"max=64,excludesall=\x00\n\r\t"`
	HeldRoles  []string `json:"held_roles" validate:"max=250,dive,max=64"`
}

func (req MilestoneRequest) toInput() (milestone.Input, bool) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return milestone.Input{}, false
	}
	return milestone.Input{Amount: amount, RewardRole: req.RewardRole, RewardText: req.RewardText}, true
}

// HandleList returns the reward ladder
// @Summary List milestones
// @Tags milestones
// @Produce json
// @Success 200 {array} domain.Milestone
// @Router /milestones [get]
func (h *MilestoneHandlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ms, err := h.svc.List(r.Context())
		if err != nil {
			respondServiceError(w, r, "List milestones", err)
			return
		}
		respondJSON(w, http.StatusOK, ms)
	}
}

// HandleCreate adds a milestone
// @Summary Create milestone
// @Tags admin
// @Accept json
// @Produce json
// @Param request body MilestoneRequest true "Milestone"
// @Success 201 {object} domain.Milestone
// @Failure 409 {object} ErrorResponse
// @Router /admin/milestones [post]
func (h *MilestoneHandlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MilestoneRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create milestone"); err != nil {
			return
		}
		in, ok := req.toInput()
		if !ok {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidAmount)
			return
		}

		m, err := h.svc.Create(r.Context(), in)
		if err != nil {
			respondServiceError(w, r, "Create milestone", err)
			return
		}
		respondJSON(w, http.StatusCreated, m)
	}
}

// HandleUpdate replaces a milestone
// @Summary Update milestone
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Milestone id"
// @Param request body MilestoneRequest true "Milestone"
// @Success 200 {object} domain.Milestone
// @Failure 404 {object} ErrorResponse
// @Router /admin/milestones/{id} [put]
func (h *MilestoneHandlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetIDParam(r, w)
		if !ok {
			return
		}
		var req MilestoneRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update milestone"); err != nil {
			return
		}
		in, ok := req.toInput()
		if !ok {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidAmount)
			return
		}

		m, err := h.svc.Update(r.Context(), id, in)
		if err != nil {
			respondServiceError(w, r, "Update milestone", err)
			return
		}
		respondJSON(w, http.StatusOK, m)
	}
}

// HandleDelete removes a milestone
// @Summary Delete milestone
// @Tags admin
// @Produce json
// @Param id path int true "Milestone id"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/milestones/{id} [delete]
func (h *MilestoneHandlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetIDParam(r, w)
		if !ok {
			return
		}
		if err := h.svc.Delete(r.Context(), id); err != nil {
			respondServiceError(w, r, "Delete milestone", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgMilestoneDeleted})
	}
}

// HandleProgress evaluates a user's cumulative progress and the role changes it implies
// @Summary Milestone progress
// @Tags milestones
// @Accept json
// @Produce json
// @Param request body ProgressRequest true "Identity and held reward roles"
// @Success 200 {object} domain.Progression
// @Router /milestones/progress [post]
func (h *MilestoneHandlers) HandleProgress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProgressRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Milestone progress"); err != nil {
			return
		}

		p, err := h.svc.Progress(r.Context(), milestone.ProgressRequest{
			Platform:   strings.ToLower(req.Platform),
			PlatformID: req.PlatformID,
			Username:   req.Username,
			HeldRoles:  req.HeldRoles,
		})
		if err != nil {
			respondServiceError(w, r, "Milestone progress", err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}
