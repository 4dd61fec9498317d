package handler

import (
	"context"
	"net/http"

	"github.com/casynetic/WagerBoard_Go/internal/concurrency"
	"github.com/casynetic/WagerBoard_Go/internal/domain"
	"github.com/casynetic/WagerBoard_Go/internal/logger"
)

// RecordCache is the admin view of the affiliate record cache
type RecordCache interface {
	Refresh(ctx context.Context, period domain.Period) ([]domain.AffiliateRecord, error)
	Invalidate(ctx context.Context, period domain.Period)
}

// AdminCacheHandler handles admin cache operations
type AdminCacheHandler struct {
	cache   RecordCache
	periods PeriodResolver
	locks   *concurrency.LockManager
}

// NewAdminCacheHandler creates a new admin cache handler. Refreshes hold the
// period's lock from locks; nil gets a private set.
func NewAdminCacheHandler(cache RecordCache, periods PeriodResolver, locks *concurrency.LockManager) *AdminCacheHandler {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &AdminCacheHandler{
		cache:   cache,
		periods: periods,
		locks:   locks,
	}
}

// CacheRefreshResponse reports a refreshed period
type CacheRefreshResponse struct {
	Period  domain.Period `json:"period"`
	Records int           `json:"records"`
}

// HandleRefresh re-fetches the current (or given) period from the affiliate API
// @Summary Refresh affiliate cache
// @Description Drops the cached records for the period and fetches them again (admin only)
// @Tags admin
// @Produce json
// @Param start query string false "Period start (YYYY-MM-DD)"
// @Param end query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} CacheRefreshResponse
// @Failure 502 {object} ErrorResponse
// @Router /admin/cache/refresh [post]
func (h *AdminCacheHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	period, err := ResolvePeriodParam(r, h.periods)
	if err != nil {
		respondServiceError(w, r, "Resolve period", err)
		return
	}

	var records []domain.AffiliateRecord
	err = h.locks.WithLock(ctx, period.RefreshLockKey(), func() error {
		h.cache.Invalidate(ctx, period)
		records, err = h.cache.Refresh(ctx, period)
		return err
	})
	if err != nil {
		respondServiceError(w, r, "Refresh affiliate cache", err)
		return
	}

	logger.FromContext(ctx).Info("Affiliate cache refreshed", "period", period.Key(), "records", len(records))
	respondJSON(w, http.StatusOK, CacheRefreshResponse{Period: period, Records: len(records)})
}
