package domain

import "github.com/shopspring/decimal"

// Platform constants
const (
	PlatformDiscord = "discord"
	PlatformKick    = "kick"
)

// DateLayout is the date format used by the affiliate API and period configuration.
const DateLayout = "2006-01-02"

// Leaderboard defaults
const (
	DefaultLeaderboardSize = 5
	MaxLeaderboardSize     = 50
)

// Lottery defaults
const (
	DefaultLotteryWinners = 3
	MaxLotteryWinners     = 25
)

// DefaultTicketUnit is the wagered amount that earns one lottery ticket.
var DefaultTicketUnit = decimal.NewFromInt(100)
