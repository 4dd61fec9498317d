package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
	"github.com/casynetic/WagerBoard_Go/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON body into req and validates it.
// On error the response has already been written and the handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		validationErrs := FormatValidationError(err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: validationErrs,
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetQueryParam returns a required query parameter.
// When it is missing a 400 has been written and ok is false.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	log := logger.FromContext(r.Context())
	value := r.URL.Query().Get(paramName)
	if value == "" {
		log.Warn(fmt.Sprintf("Missing %s query parameter", paramName))
		http.Error(w, fmt.Sprintf(ErrMsgMissingQueryParam, paramName), http.StatusBadRequest)
		return "", false
	}
	return value, true
}

// GetOptionalQueryParam returns the parameter or defaultValue when absent
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// IdentityParams names whose standing a read endpoint reports
type IdentityParams struct {
	Platform   string
	PlatformID string
	// Username is used when the identity is not linked
	Username string
}

// GetIdentityParams reads platform, platform_id and username from the query
func GetIdentityParams(r *http.Request) IdentityParams {
	return IdentityParams{
		Platform:   strings.ToLower(GetOptionalQueryParam(r, "platform", "")),
		PlatformID: GetOptionalQueryParam(r, "platform_id", ""),
		Username:   GetOptionalQueryParam(r, "username", ""),
	}
}

// ResolvePeriodParam resolves the optional start/end query pair, falling back
// to the configured current period
func ResolvePeriodParam(r *http.Request, periods PeriodResolver) (domain.Period, error) {
	return periods.ResolvePeriod(r.Context(), GetOptionalQueryParam(r, "start", ""), GetOptionalQueryParam(r, "end", ""))
}

// GetLimitParam parses the optional limit query parameter. Missing means zero,
// letting the service apply its default. On a malformed value it writes a 400 and returns false.
func GetLimitParam(r *http.Request, w http.ResponseWriter) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return 0, false
	}
	return limit, true
}

// GetIDParam parses the {id} route parameter. On a malformed value it writes a 400 and returns false.
func GetIDParam(r *http.Request, w http.ResponseWriter) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return 0, false
	}
	return id, true
}
