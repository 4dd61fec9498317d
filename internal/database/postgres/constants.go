package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Query Operations
const (
	ErrMsgFailedToUpsertLink       = "failed to upsert account link"
	ErrMsgFailedToGetLink          = "failed to get account link"
	ErrMsgFailedToDeleteLink       = "failed to delete account link"
	ErrMsgFailedToListMilestones   = "failed to list milestones"
	ErrMsgFailedToGetMilestone     = "failed to get milestone"
	ErrMsgFailedToSaveMilestone    = "failed to save milestone"
	ErrMsgFailedToDeleteMilestone  = "failed to delete milestone"
	ErrMsgFailedToGetPeriod        = "failed to get leaderboard period"
	ErrMsgFailedToSavePeriod       = "failed to save leaderboard period"
	ErrMsgFailedToInsertDraw       = "failed to insert lottery draw"
	ErrMsgFailedToInsertWinner     = "failed to insert lottery winner"
	ErrMsgFailedToGetDraw          = "failed to get lottery draw"
	ErrMsgFailedToGetWinners       = "failed to get lottery winners"
	ErrMsgFailedToParseStoredValue = "failed to parse stored value"
)
