package bootstrap

import "time"

// File system permissions
const (
	DirPermission     = 0755
	LogFilePermission = 0666
)

// Session log files
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"

	// LogFileRetentionCount is the number of older log files kept at startup
	LogFileRetentionCount = 9
)

// Timeouts for startup and background work
const (
	RedisConnectTimeout = 5 * time.Second
	SchedulerJobTimeout = 30 * time.Second
	ShutdownTimeout     = 10 * time.Second
)

// Log messages for startup
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting WagerBoard"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
	LogMsgRecordCacheReady    = "Affiliate record cache ready"
	LogMsgSchedulerStarted    = "Scheduler started"
	LogMsgMilestonesSeeded    = "Milestone seed applied"
)

// Error messages for startup
const (
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
	ErrMsgFailedConnectRedis  = "failed to connect to redis"
	ErrMsgInvalidRatioPolicy  = "invalid milestone ratio policy"
	ErrMsgFailedStartJobs     = "failed to start scheduled jobs"
	ErrMsgFailedReadSeed      = "failed to read milestone seed"
	ErrMsgInvalidSeed         = "invalid milestone seed"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgSchedulerStopFailed  = "Scheduler shutdown failed"
	LogMsgRedisCloseFailed     = "Redis client close failed"
)
