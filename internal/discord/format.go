package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

var (
	printer = message.NewPrinter(language.English)
	titler  = cases.Title(language.English)
)

const progressBarWidth = 10

// formatAmount renders a wagered amount as $1,234.56
func formatAmount(d decimal.Decimal) string {
	return printer.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}

// formatCount renders an integer with thousands separators
func formatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// placeLabel returns the medal for the podium and "N." below it
func placeLabel(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", rank)
	}
}

// formatLeaderboard renders one line per entry
func formatLeaderboard(entries []domain.LeaderboardEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "%s **%s** – %s wagered\n", placeLabel(e.Rank), e.Username, formatAmount(e.WageredAmount))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// leaderboardTitle names the board after the month its period starts in
func leaderboardTitle(p domain.Period) string {
	return "🏆 Leaderboard – " + p.Start.Format("January 2006")
}

// updatedFooter stamps an embed with the render time in UTC
func updatedFooter(now time.Time) string {
	return "Updated: " + now.UTC().Format("02 January 15:04") + " UTC"
}

// prizeLines renders the podium prizes, TBA when unset, plus the bonus line if configured
func prizeLines(p domain.Prizes) string {
	orTBA := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "TBA"
		}
		return s
	}
	lines := []string{
		"🥇 1st – " + orTBA(p.First),
		"🥈 2nd – " + orTBA(p.Second),
		"🥉 3rd – " + orTBA(p.Third),
	}
	if p.BonusThreshold != nil && p.BonusReward != "" {
		lines = append(lines, fmt.Sprintf("🎁 Bonus – %s for %s+ wagered", p.BonusReward, formatAmount(*p.BonusThreshold)))
	}
	return strings.Join(lines, "\n")
}

// progressBar renders ratio in [0,1] as a fixed width bar
func progressBar(ratio float64) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*progressBarWidth + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled) + fmt.Sprintf(" %.0f%%", ratio*100)
}

// stateLabel is the display form of a progression state
func stateLabel(state domain.ProgressionState) string {
	return titler.String(strings.ReplaceAll(string(state), "_", " "))
}

// roleMention renders a role id as a mention
func roleMention(roleID string) string {
	return "<@&" + roleID + ">"
}

// milestoneReward describes what a milestone grants
func milestoneReward(m domain.Milestone) string {
	parts := make([]string, 0, 2)
	if m.RewardRole != "" {
		parts = append(parts, roleMention(m.RewardRole))
	}
	if m.RewardText != "" {
		parts = append(parts, m.RewardText)
	}
	return strings.Join(parts, " · ")
}
