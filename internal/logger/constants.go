package logger

// Accepted LOG_LEVEL values
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Accepted LOG_FORMAT values
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Defaults for the base attributes
const (
	DefaultServiceName     = "wagerboard"
	DefaultVersion         = "dev"
	EnvironmentDev         = "dev"
	EnvironmentDevelopment = "development"
)

// Attribute keys attached to every record
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
