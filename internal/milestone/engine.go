// Package milestone evaluates cumulative wager progress against the reward ladder.
package milestone

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// RatioPolicy selects the reference amount the progress ratio is measured against.
type RatioPolicy string

const (
	// RatioAgainstHighest measures against the highest reached milestone,
	// or the lowest milestone when none is reached yet.
	RatioAgainstHighest RatioPolicy = "highest"
	// RatioAgainstNext measures against the next unreached milestone.
	RatioAgainstNext RatioPolicy = "next"
)

// ParseRatioPolicy maps a config value to a policy. Empty means RatioAgainstHighest.
func ParseRatioPolicy(s string) (RatioPolicy, error) {
	switch RatioPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", RatioAgainstHighest:
		return RatioAgainstHighest, nil
	case RatioAgainstNext:
		return RatioAgainstNext, nil
	default:
		return "", fmt.Errorf("unknown milestone ratio policy %q", s)
	}
}

// Evaluate derives a user's progression from their cumulative wager.
// It has no side effects; identical inputs always give identical output.
func Evaluate(current decimal.Decimal, milestones []domain.Milestone, held []string, policy RatioPolicy) domain.Progression {
	if current.IsNegative() {
		current = decimal.Zero
	}

	ladder := sortedLadder(milestones)
	p := domain.Progression{
		Current:       current,
		State:         domain.StateNoneReached,
		RolesToGrant:  []string{},
		RolesToRevoke: []string{},
	}
	if len(ladder) == 0 {
		return p
	}

	highestIdx := -1
	for i := range ladder {
		if ladder[i].Amount.LessThanOrEqual(current) {
			highestIdx = i
			continue
		}
		break
	}

	if highestIdx >= 0 {
		h := ladder[highestIdx]
		p.Highest = &h
	}
	if highestIdx+1 < len(ladder) {
		n := ladder[highestIdx+1]
		p.Next = &n
	}

	switch {
	case p.Highest == nil:
		p.State = domain.StateNoneReached
	case p.Next == nil:
		p.State = domain.StateAllReached
	default:
		p.State = domain.StatePartiallyProgressed
	}

	p.Ratio = ratio(current, ladder, p.Highest, p.Next, policy)

	if p.Highest != nil {
		lower := make([]string, 0, highestIdx)
		for _, m := range ladder[:highestIdx] {
			lower = append(lower, m.RewardRole)
		}
		p.RolesToGrant, p.RolesToRevoke = RoleDiff(p.Highest.RewardRole, held, lower)
	}
	return p
}

// RoleDiff computes which roles to grant and revoke so that only the target
// tier role is held. Only held lower-tier roles are revoked, and the target
// role is never revoked even when a lower tier shares it.
func RoleDiff(target string, held []string, lowerTierRoles []string) (grant, revoke []string) {
	grant = []string{}
	revoke = []string{}

	heldSet := make(map[string]struct{}, len(held))
	for _, r := range held {
		heldSet[r] = struct{}{}
	}

	if target != "" {
		if _, ok := heldSet[target]; !ok {
			grant = append(grant, target)
		}
	}

	seen := make(map[string]struct{}, len(lowerTierRoles))
	for _, r := range lowerTierRoles {
		if r == "" || r == target {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		if _, ok := heldSet[r]; ok {
			revoke = append(revoke, r)
		}
	}
	return grant, revoke
}

func sortedLadder(milestones []domain.Milestone) []domain.Milestone {
	ladder := make([]domain.Milestone, len(milestones))
	copy(ladder, milestones)
	sort.SliceStable(ladder, func(i, j int) bool {
		return ladder[i].Amount.LessThan(ladder[j].Amount)
	})
	return ladder
}

func ratio(current decimal.Decimal, ladder []domain.Milestone, highest, next *domain.Milestone, policy RatioPolicy) float64 {
	var ref decimal.Decimal
	switch policy {
	case RatioAgainstNext:
		if next == nil {
			return 1
		}
		ref = next.Amount
	default:
		if highest != nil {
			ref = highest.Amount
		} else {
			ref = ladder[0].Amount
		}
	}

	if !ref.IsPositive() {
		return 1
	}
	r := current.Div(ref)
	if r.GreaterThan(decimal.NewFromInt(1)) {
		return 1
	}
	f, _ := r.Float64()
	return f
}
