package server

// Middleware error responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alerts
const (
	SecurityAlertFailedAuth = "SECURITY ALERT: Repeated invalid API keys"
	SecurityAlertHighRate   = "SECURITY ALERT: Client over request budget"
)

// Log messages
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
)

// Request headers the server reads
const (
	HeaderAPIKey        = "X-API-Key"
	HeaderAuthorization = "Authorization"
	HeaderForwardedFor  = "X-Forwarded-For"
	HeaderRetryAfter    = "Retry-After"
)

// HeaderContentTypeOptions is the response header that disables MIME sniffing
const HeaderContentTypeOptions = "X-Content-Type-Options"

// securityHeaders are set on every response
var securityHeaders = map[string]string{
	HeaderContentTypeOptions: "nosniff",
	"X-Frame-Options":        "DENY",
	"Referrer-Policy":        "no-referrer",
	"Cache-Control":          "no-store",
}

// PublicPaths skip API key checks
var PublicPaths = []string{
	"/swagger/",
	"/healthz",
	"/readyz",
	"/metrics",
	"/version",
}

// redactedHeaders never reach the debug request log
var redactedHeaders = []string{HeaderAPIKey, HeaderAuthorization}

// RedactedValue replaces secret header values in logs
const RedactedValue = "[REDACTED]"
