package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgInvalidID         = "Invalid id parameter"
	ErrMsgInvalidAmount     = "Invalid amount"
)

// Success messages for API responses
const (
	MsgAccountUnlinked  = "Account unlinked"
	MsgMilestoneDeleted = "Milestone deleted"
)
