// Package ranking orders affiliate records into a leaderboard.
package ranking

import (
	"sort"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// Rank sorts records by wagered amount, highest first, and assigns contiguous
// ranks starting at 1. Records with equal amounts keep their input order.
// The input slice is not modified.
func Rank(records []domain.AffiliateRecord) []domain.LeaderboardEntry {
	if len(records) == 0 {
		return []domain.LeaderboardEntry{}
	}

	sorted := make([]domain.AffiliateRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WageredAmount.GreaterThan(sorted[j].WageredAmount)
	})

	entries := make([]domain.LeaderboardEntry, len(sorted))
	for i, r := range sorted {
		entries[i] = domain.LeaderboardEntry{
			Rank:          i + 1,
			Username:      r.Username,
			WageredAmount: r.WageredAmount,
		}
	}
	return entries
}

// TopN returns the first n ranked entries.
func TopN(records []domain.AffiliateRecord, n int) []domain.LeaderboardEntry {
	if n <= 0 {
		return []domain.LeaderboardEntry{}
	}
	ranked := Rank(records)
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// FindRank returns the ranked entry for username, matched case-insensitively.
// When the username appears more than once, the best ranked entry wins.
func FindRank(records []domain.AffiliateRecord, username string) (domain.LeaderboardEntry, bool) {
	for _, e := range Rank(records) {
		if domain.SameUsername(e.Username, username) {
			return e, true
		}
	}
	return domain.LeaderboardEntry{}, false
}
