// Package lottery converts wagers into tickets and draws weighted winners.
package lottery

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

// RandomSource is the randomness a draw consumes. *math/rand.Rand satisfies it.
type RandomSource interface {
	Int63n(n int64) int64
}

// TicketHolder is one participant's ticket count.
type TicketHolder struct {
	Username string `json:"username"`
	Tickets  int64  `json:"tickets"`
}

// Allocation is the ticket pool in first-appearance order.
// Only holders with at least one ticket are present.
type Allocation []TicketHolder

// Map returns the username to ticket count view of the allocation.
func (a Allocation) Map() map[string]int64 {
	m := make(map[string]int64, len(a))
	for _, h := range a {
		m[h.Username] = h.Tickets
	}
	return m
}

// Total returns the sum of all tickets.
func (a Allocation) Total() int64 {
	var total int64
	for _, h := range a {
		total += h.Tickets
	}
	return total
}

// Find returns the holder matching username case-insensitively.
func (a Allocation) Find(username string) (TicketHolder, bool) {
	for _, h := range a {
		if domain.SameUsername(h.Username, username) {
			return h, true
		}
	}
	return TicketHolder{}, false
}

// TicketsFor returns floor(wagered / unit), never negative.
func TicketsFor(wagered, unit decimal.Decimal) int64 {
	if !unit.IsPositive() {
		unit = domain.DefaultTicketUnit
	}
	if !wagered.IsPositive() {
		return 0
	}
	return wagered.Div(unit).Floor().IntPart()
}

// ComputeTickets allocates tickets to every record. Repeated usernames are
// merged, wagers summed, before flooring. Holders with zero tickets are dropped.
func ComputeTickets(records []domain.AffiliateRecord, unit decimal.Decimal) Allocation {
	type merged struct {
		username string
		wagered  decimal.Decimal
	}

	order := make([]*merged, 0, len(records))
	index := make(map[string]*merged, len(records))
	for _, r := range records {
		key := strings.ToLower(strings.TrimSpace(r.Username))
		if m, ok := index[key]; ok {
			m.wagered = m.wagered.Add(r.WageredAmount)
			continue
		}
		m := &merged{username: r.Username, wagered: r.WageredAmount}
		index[key] = m
		order = append(order, m)
	}

	alloc := make(Allocation, 0, len(order))
	for _, m := range order {
		if n := TicketsFor(m.wagered, unit); n > 0 {
			alloc = append(alloc, TicketHolder{Username: m.username, Tickets: n})
		}
	}
	return alloc
}

// DrawWinners selects up to k distinct holders. Each pick is weighted by
// ticket count among the holders not yet chosen. The result is in placement order.
func DrawWinners(alloc Allocation, k int, rng RandomSource) ([]string, error) {
	pool := make([]TicketHolder, 0, len(alloc))
	var total int64
	for _, h := range alloc {
		if h.Tickets > 0 {
			pool = append(pool, h)
			total += h.Tickets
		}
	}
	if len(pool) == 0 {
		return nil, domain.ErrNoEligibleParticipants
	}
	if k <= 0 {
		return []string{}, nil
	}
	if k > len(pool) {
		k = len(pool)
	}

	winners := make([]string, 0, k)
	for len(winners) < k {
		r := rng.Int63n(total)
		var cumulative int64
		for i, h := range pool {
			cumulative += h.Tickets
			if r < cumulative {
				winners = append(winners, h.Username)
				total -= h.Tickets
				pool = append(pool[:i], pool[i+1:]...)
				break
			}
		}
	}
	return winners, nil
}
