package discord

// Friendly message constants for Discord responses
const (
	// Leaderboard
	MsgPeriodNotSet        = "❌ The leaderboard is not set yet. Please contact an admin."
	MsgUpstreamUnavailable = "❌ Failed to fetch data from the affiliate API. Please try again later."
	MsgNoLeaderboardData   = "❌ No leaderboard data available for the specified period."
	MsgNotOnLeaderboardFmt = "😕 %s, you’re not on the leaderboard yet. Time to spin!"
	MsgRankFmt             = "🎯 %s, your rank is **#%d** with **%s** wagered!"
	MsgPeriodSetFmt        = "✅ Leaderboard set from **%s** to **%s** with updated prizes!"

	// Linking
	MsgNotAffiliated  = "❌ The provided account is not found under our affiliate code. Please check the username."
	MsgNoLinkToUnlink = "⚠️ No linked account found to unlink."
	MsgUnlinked       = "✅ Your accounts have been unlinked."
	MsgNoLinksForFmt  = "❌ No account links found for %s."

	// Lottery
	MsgDrawExists = "⚠️ The lottery for this period has already been drawn."
	MsgNoEligible = "😕 No one has enough tickets to enter the lottery yet."

	// Milestones
	MsgNoMilestones = "No milestones have been configured yet."

	MsgGenericError = "❌ An unexpected error occurred."
)
