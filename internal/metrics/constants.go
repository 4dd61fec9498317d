package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameSecurityEvents       = "http_security_events_total"
)

// Affiliate source metric names
const (
	MetricNameAffiliateFetches       = "affiliate_fetches_total"
	MetricNameAffiliateFetchDuration = "affiliate_fetch_duration_seconds"
	MetricNameAffiliateCacheLookups  = "affiliate_cache_lookups_total"
)

// Business metric names
const (
	MetricNameLeaderboardQueries   = "leaderboard_queries_total"
	MetricNameLotteryDraws         = "lottery_draws_total"
	MetricNameLotteryTicketsPooled = "lottery_tickets_pooled"
	MetricNameProgressEvaluations  = "milestone_progress_evaluations_total"
	MetricNameRoleChanges          = "milestone_role_changes_total"
	MetricNameAccountLinks         = "account_link_operations_total"
	MetricNameSchedulerRuns        = "scheduler_job_runs_total"
)

// Discord bot metric names
const (
	MetricNameBotCommands = "discord_commands_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextSecurityEvents       = "Total number of rejected requests by reason"
)

// Affiliate source metric help text
const (
	HelpTextAffiliateFetches       = "Total number of affiliate API fetches by outcome"
	HelpTextAffiliateFetchDuration = "Affiliate API fetch latency in seconds"
	HelpTextAffiliateCacheLookups  = "Total number of affiliate cache lookups by result"
)

// Business metric help text
const (
	HelpTextLeaderboardQueries   = "Total number of leaderboard queries by kind"
	HelpTextLotteryDraws         = "Total number of lottery draws by outcome"
	HelpTextLotteryTicketsPooled = "Tickets in the pool of the most recent draw"
	HelpTextProgressEvaluations  = "Total number of milestone progress evaluations by state"
	HelpTextRoleChanges          = "Total number of reward role changes decided by action"
	HelpTextAccountLinks         = "Total number of account link operations by action"
	HelpTextSchedulerRuns        = "Total number of scheduled job runs by job and outcome"
	HelpTextBotCommands          = "Total number of Discord slash commands received by command"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelOutcome = "outcome"
	LabelResult  = "result"
	LabelKind    = "kind"
	LabelState   = "state"
	LabelAction  = "action"
	LabelJob     = "job"
	LabelBackend = "backend"
	LabelCommand = "command"
	LabelReason  = "reason"
)

// Label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeEmpty   = "empty"
	OutcomeSkipped = "skipped"

	CacheHit  = "hit"
	CacheMiss = "miss"

	ActionGrant  = "grant"
	ActionRevoke = "revoke"
	ActionLink   = "link"
	ActionUnlink = "unlink"

	QueryTop    = "top"
	QueryRank   = "rank"
	QueryInfo   = "info"
	QueryTicket = "tickets"

	ReasonFailedAuth  = "failed_auth"
	ReasonRateLimited = "rate_limited"
)

// HTTPLatencyBuckets are the histogram buckets for request latency.
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// UpstreamLatencyBuckets are the histogram buckets for affiliate API latency.
var UpstreamLatencyBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30}
