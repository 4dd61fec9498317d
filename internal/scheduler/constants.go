package scheduler

import "errors"

// ErrSkipped is returned by a job that had nothing to do on this run
var ErrSkipped = errors.New("job skipped")

// Job names, also used as metric labels
const (
	JobCacheWarm = "affiliate_cache_warm"
)

// Log messages
const (
	LogMsgJobScheduled  = "Job scheduled"
	LogMsgJobCompleted  = "Job completed"
	LogMsgJobSkipped    = "Job skipped"
	LogMsgJobFailed     = "Job failed"
	LogMsgCacheWarmed   = "Affiliate cache warmed"
	LogMsgCacheWarmBusy = "Affiliate cache refresh in progress, skipping"
)
