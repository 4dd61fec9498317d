package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/casynetic/WagerBoard_Go/internal/metrics"
)

// AdminMetricsResponse contains JSON-formatted metrics for admin tooling
type AdminMetricsResponse struct {
	HTTP      HTTPMetrics      `json:"http"`
	Affiliate AffiliateMetrics `json:"affiliate"`
	Business  BusinessMetrics  `json:"business"`
}

type HTTPMetrics struct {
	RequestsTotalByStatus map[string]float64 `json:"requests_total_by_status"`
	AvgLatencyMs          float64            `json:"avg_latency_ms"`
	P95LatencyMs          float64            `json:"p95_latency_ms"`
	InFlight              float64            `json:"in_flight"`
}

type AffiliateMetrics struct {
	FetchesByOutcome map[string]float64 `json:"fetches_by_outcome"`
	CacheByResult    map[string]float64 `json:"cache_by_result"`
	AvgFetchMs       float64            `json:"avg_fetch_ms"`
}

type BusinessMetrics struct {
	LeaderboardQueriesByKind map[string]float64 `json:"leaderboard_queries_by_kind"`
	LotteryDrawsByOutcome    map[string]float64 `json:"lottery_draws_by_outcome"`
	ProgressByState          map[string]float64 `json:"progress_by_state"`
	RoleChangesByAction      map[string]float64 `json:"role_changes_by_action"`
	AccountLinksByAction     map[string]float64 `json:"account_links_by_action"`
}

// AdminMetricsHandler handles admin metrics requests
type AdminMetricsHandler struct {
	gatherer prometheus.Gatherer
}

// NewAdminMetricsHandler creates a new admin metrics handler. A nil gatherer uses the default registry.
func NewAdminMetricsHandler(gatherer prometheus.Gatherer) *AdminMetricsHandler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &AdminMetricsHandler{gatherer: gatherer}
}

// HandleGetMetrics returns JSON-formatted metrics from Prometheus
// @Summary Metrics summary
// @Tags admin
// @Produce json
// @Success 200 {object} AdminMetricsResponse
// @Router /admin/metrics [get]
func (h *AdminMetricsHandler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	resp, err := gatherMetrics(h.gatherer)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to gather metrics")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func gatherMetrics(gatherer prometheus.Gatherer) (*AdminMetricsResponse, error) {
	metricFamilies, err := gatherer.Gather()
	if err != nil {
		return nil, err
	}

	resp := &AdminMetricsResponse{
		HTTP: HTTPMetrics{
			RequestsTotalByStatus: make(map[string]float64),
		},
		Affiliate: AffiliateMetrics{
			FetchesByOutcome: make(map[string]float64),
			CacheByResult:    make(map[string]float64),
		},
		Business: BusinessMetrics{
			LeaderboardQueriesByKind: make(map[string]float64),
			LotteryDrawsByOutcome:    make(map[string]float64),
			ProgressByState:          make(map[string]float64),
			RoleChangesByAction:      make(map[string]float64),
			AccountLinksByAction:     make(map[string]float64),
		},
	}

	for _, mf := range metricFamilies {
		switch mf.GetName() {
		case metrics.MetricNameHTTPRequestsTotal:
			sumCounterBy(mf, metrics.LabelStatus, resp.HTTP.RequestsTotalByStatus)
		case metrics.MetricNameHTTPRequestDuration:
			for _, m := range mf.GetMetric() {
				if hist := m.GetHistogram(); hist != nil {
					if hist.GetSampleCount() > 0 {
						resp.HTTP.AvgLatencyMs = (hist.GetSampleSum() / float64(hist.GetSampleCount())) * 1000
					}
					resp.HTTP.P95LatencyMs = estimateQuantile(hist, 0.95) * 1000
				}
			}
		case metrics.MetricNameHTTPRequestsInFlight:
			for _, m := range mf.GetMetric() {
				resp.HTTP.InFlight += m.GetGauge().GetValue()
			}
		case metrics.MetricNameAffiliateFetches:
			sumCounterBy(mf, metrics.LabelOutcome, resp.Affiliate.FetchesByOutcome)
		case metrics.MetricNameAffiliateCacheLookups:
			sumCounterBy(mf, metrics.LabelResult, resp.Affiliate.CacheByResult)
		case metrics.MetricNameAffiliateFetchDuration:
			for _, m := range mf.GetMetric() {
				if hist := m.GetHistogram(); hist != nil && hist.GetSampleCount() > 0 {
					resp.Affiliate.AvgFetchMs = (hist.GetSampleSum() / float64(hist.GetSampleCount())) * 1000
				}
			}
		case metrics.MetricNameLeaderboardQueries:
			sumCounterBy(mf, metrics.LabelKind, resp.Business.LeaderboardQueriesByKind)
		case metrics.MetricNameLotteryDraws:
			sumCounterBy(mf, metrics.LabelOutcome, resp.Business.LotteryDrawsByOutcome)
		case metrics.MetricNameProgressEvaluations:
			sumCounterBy(mf, metrics.LabelState, resp.Business.ProgressByState)
		case metrics.MetricNameRoleChanges:
			sumCounterBy(mf, metrics.LabelAction, resp.Business.RoleChangesByAction)
		case metrics.MetricNameAccountLinks:
			sumCounterBy(mf, metrics.LabelAction, resp.Business.AccountLinksByAction)
		}
	}

	return resp, nil
}

func sumCounterBy(mf *dto.MetricFamily, label string, into map[string]float64) {
	for _, m := range mf.GetMetric() {
		if v := getLabelValue(m, label); v != "" {
			into[v] += m.GetCounter().GetValue()
		}
	}
}

func getLabelValue(m *dto.Metric, labelName string) string {
	for _, label := range m.GetLabel() {
		if label.GetName() == labelName {
			return label.GetValue()
		}
	}
	return ""
}

// estimateQuantile approximates the given quantile from a histogram
func estimateQuantile(hist *dto.Histogram, quantile float64) float64 {
	totalCount := hist.GetSampleCount()
	if totalCount == 0 {
		return 0
	}

	targetCount := float64(totalCount) * quantile
	buckets := hist.GetBucket()
	for _, bucket := range buckets {
		if float64(bucket.GetCumulativeCount()) >= targetCount {
			return bucket.GetUpperBound()
		}
	}

	if len(buckets) > 0 {
		return buckets[len(buckets)-1].GetUpperBound()
	}
	return 0
}
