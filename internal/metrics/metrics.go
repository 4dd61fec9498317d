package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)

	SecurityEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSecurityEvents,
			Help: HelpTextSecurityEvents,
		},
		[]string{LabelReason},
	)
)

// Affiliate Source Metrics
var (
	AffiliateFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAffiliateFetches,
			Help: HelpTextAffiliateFetches,
		},
		[]string{LabelOutcome},
	)

	AffiliateFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameAffiliateFetchDuration,
			Help:    HelpTextAffiliateFetchDuration,
			Buckets: UpstreamLatencyBuckets,
		},
	)

	AffiliateCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAffiliateCacheLookups,
			Help: HelpTextAffiliateCacheLookups,
		},
		[]string{LabelBackend, LabelResult},
	)
)

// Business Metrics
var (
	LeaderboardQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLeaderboardQueries,
			Help: HelpTextLeaderboardQueries,
		},
		[]string{LabelKind},
	)

	LotteryDraws = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLotteryDraws,
			Help: HelpTextLotteryDraws,
		},
		[]string{LabelOutcome},
	)

	LotteryTicketsPooled = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameLotteryTicketsPooled,
			Help: HelpTextLotteryTicketsPooled,
		},
	)

	ProgressEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameProgressEvaluations,
			Help: HelpTextProgressEvaluations,
		},
		[]string{LabelState},
	)

	RoleChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoleChanges,
			Help: HelpTextRoleChanges,
		},
		[]string{LabelAction},
	)

	AccountLinks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAccountLinks,
			Help: HelpTextAccountLinks,
		},
		[]string{LabelAction},
	)

	SchedulerRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSchedulerRuns,
			Help: HelpTextSchedulerRuns,
		},
		[]string{LabelJob, LabelOutcome},
	)
)

// Discord Bot Metrics
var (
	BotCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBotCommands,
			Help: HelpTextBotCommands,
		},
		[]string{LabelCommand},
	)
)
