package database

import "time"

// Connection pool defaults
const (
	DefaultMinConnections = 2
	DefaultMaxConnections = 10
	DefaultAppName        = "wagerboard"

	HealthCheckPeriod = time.Minute
	PingTimeout       = 5 * time.Second

	RuntimeParamAppName = "application_name"
)

// Error messages
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToLoadMigrations  = "failed to load migrations"
	ErrMsgFailedToApplyMigrations = "failed to apply migrations"
)

// Log messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationApplied                = "Applied migration"
)
