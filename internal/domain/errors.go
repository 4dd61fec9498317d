package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Leaderboard errors
	ErrMsgPeriodNotSet        = "leaderboard period is not set"
	ErrMsgInvalidPeriod       = "invalid leaderboard period"
	ErrMsgNotOnLeaderboard    = "user is not on the leaderboard"
	ErrMsgNoLeaderboardData   = "no leaderboard data available for the period"
	ErrMsgUpstreamUnavailable = "affiliate API unavailable"

	// Lottery errors
	ErrMsgNoEligibleParticipants = "no eligible participants"
	ErrMsgDrawExists             = "a lottery draw already exists for this period"
	ErrMsgDrawNotFound           = "lottery draw not found"

	// Milestone errors
	ErrMsgMilestoneNotFound = "milestone not found"
	ErrMsgMilestoneExists   = "a milestone with this amount already exists"
	ErrMsgInvalidMilestone  = "invalid milestone"

	// Linking errors
	ErrMsgLinkNotFound  = "no linked account found"
	ErrMsgNotAffiliated = "account is not registered under the affiliate code"

	// Database/System errors
	ErrMsgConnectionTimeout = "connection timeout"
	ErrMsgDatabaseError     = "database error"

	// Platform errors
	ErrMsgInvalidPlatform = "invalid platform"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Leaderboard errors
	ErrPeriodNotSet        = errors.New(ErrMsgPeriodNotSet)
	ErrInvalidPeriod       = errors.New(ErrMsgInvalidPeriod)
	ErrNotOnLeaderboard    = errors.New(ErrMsgNotOnLeaderboard)
	ErrNoLeaderboardData   = errors.New(ErrMsgNoLeaderboardData)
	ErrUpstreamUnavailable = errors.New(ErrMsgUpstreamUnavailable)

	// Lottery errors
	ErrNoEligibleParticipants = errors.New(ErrMsgNoEligibleParticipants)
	ErrDrawExists             = errors.New(ErrMsgDrawExists)
	ErrDrawNotFound           = errors.New(ErrMsgDrawNotFound)

	// Milestone errors
	ErrMilestoneNotFound = errors.New(ErrMsgMilestoneNotFound)
	ErrMilestoneExists   = errors.New(ErrMsgMilestoneExists)
	ErrInvalidMilestone  = errors.New(ErrMsgInvalidMilestone)

	// Linking errors
	ErrLinkNotFound  = errors.New(ErrMsgLinkNotFound)
	ErrNotAffiliated = errors.New(ErrMsgNotAffiliated)

	// Database/System errors
	ErrConnectionTimeout = errors.New(ErrMsgConnectionTimeout)
	ErrDatabaseError     = errors.New(ErrMsgDatabaseError)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// Platform errors
	ErrInvalidPlatform = errors.New(ErrMsgInvalidPlatform)
)
