package linking

// ============================================================================
// Validation
// ============================================================================

const (
	// MaxUsernameLength bounds affiliate and kick usernames
	MaxUsernameLength = 64
)

// SupportedPlatforms lists the platforms an identity may be linked from
var SupportedPlatforms = map[string]bool{
	"discord": true,
	"kick":    true,
}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgAccountLinked        = "Account linked"
	LogMsgAccountUnlinked      = "Account unlinked"
	LogMsgAffiliateCheckFailed = "Affiliate membership check failed"
	LogMsgNotAffiliated        = "Link rejected: username not under affiliate code"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgUsernameRequired = "affiliate username is required"
	ErrMsgUsernameTooLong  = "username is too long"
	ErrMsgPlatformIDEmpty  = "platform id is required"
)
