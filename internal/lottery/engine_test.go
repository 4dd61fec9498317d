package lottery

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

func rec(name, amount string) domain.AffiliateRecord {
	return domain.AffiliateRecord{Username: name, WageredAmount: domain.ParseAmount(amount)}
}

// fixedSource returns the queued values in order.
type fixedSource struct {
	values []int64
	calls  []int64
}

func (f *fixedSource) Int63n(n int64) int64 {
	f.calls = append(f.calls, n)
	v := f.values[0]
	f.values = f.values[1:]
	return v % n
}

func TestComputeTickets(t *testing.T) {
	records := []domain.AffiliateRecord{
		rec("zero", "0"),
		rec("almost", "99"),
		rec("one", "100"),
		rec("two", "250"),
	}

	alloc := ComputeTickets(records, decimal.NewFromInt(100))

	assert.Equal(t, map[string]int64{"one": 1, "two": 2}, alloc.Map())
	assert.Equal(t, int64(3), alloc.Total())
	assert.Equal(t, "one", alloc[0].Username, "first-appearance order is kept")
}

func TestComputeTickets_MergesDuplicates(t *testing.T) {
	records := []domain.AffiliateRecord{
		rec("Alice", "60"),
		rec("bob", "500"),
		rec("alice", "60"),
	}

	alloc := ComputeTickets(records, decimal.NewFromInt(100))

	require.Len(t, alloc, 2)
	assert.Equal(t, TicketHolder{Username: "Alice", Tickets: 1}, alloc[0])
	h, ok := alloc.Find("ALICE")
	require.True(t, ok)
	assert.Equal(t, int64(1), h.Tickets)
}

func TestComputeTickets_NonPositiveUnitUsesDefault(t *testing.T) {
	alloc := ComputeTickets([]domain.AffiliateRecord{rec("a", "350")}, decimal.Zero)
	assert.Equal(t, int64(3), alloc.Map()["a"])
}

func TestComputeTickets_FractionalUnit(t *testing.T) {
	alloc := ComputeTickets([]domain.AffiliateRecord{rec("a", "1.0")}, decimal.RequireFromString("0.25"))
	assert.Equal(t, int64(4), alloc.Map()["a"])
}

func TestDrawWinners_EmptyPool(t *testing.T) {
	winners, err := DrawWinners(nil, 3, rand.New(rand.NewSource(1)))
	assert.Nil(t, winners)
	assert.ErrorIs(t, err, domain.ErrNoEligibleParticipants)

	zeroOnly := ComputeTickets([]domain.AffiliateRecord{rec("a", "10")}, decimal.NewFromInt(100))
	_, err = DrawWinners(zeroOnly, 1, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, domain.ErrNoEligibleParticipants)
}

func TestDrawWinners_ClampsToPoolSize(t *testing.T) {
	alloc := Allocation{{"a", 1}, {"b", 5}}

	winners, err := DrawWinners(alloc, 10, rand.New(rand.NewSource(7)))

	require.NoError(t, err)
	assert.Len(t, winners, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, winners)
}

func TestDrawWinners_NoDuplicates(t *testing.T) {
	alloc := Allocation{{"a", 1000}, {"b", 1}, {"c", 1}, {"d", 1}}

	for seed := int64(0); seed < 50; seed++ {
		winners, err := DrawWinners(alloc, 3, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		seen := make(map[string]bool)
		for _, w := range winners {
			assert.False(t, seen[w], "duplicate winner %s with seed %d", w, seed)
			seen[w] = true
		}
	}
}

func TestDrawWinners_SeededIsReproducible(t *testing.T) {
	alloc := Allocation{{"a", 3}, {"b", 7}, {"c", 2}, {"d", 9}, {"e", 1}}

	first, err := DrawWinners(alloc, 3, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	second, err := DrawWinners(alloc, 3, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDrawWinners_CumulativeSelection(t *testing.T) {
	// a owns [0,2), b owns [2,5), c owns [5,6)
	alloc := Allocation{{"a", 2}, {"b", 3}, {"c", 1}}
	src := &fixedSource{values: []int64{4, 2, 0}}

	winners, err := DrawWinners(alloc, 3, src)

	require.NoError(t, err)
	// after b is removed: a owns [0,2), c owns [2,3)
	assert.Equal(t, []string{"b", "c", "a"}, winners)
	assert.Equal(t, []int64{6, 3, 2}, src.calls, "total shrinks as winners are removed")
}

func TestDrawWinners_DoesNotMutateAllocation(t *testing.T) {
	alloc := Allocation{{"a", 2}, {"b", 3}}
	_, err := DrawWinners(alloc, 2, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.Equal(t, Allocation{{"a", 2}, {"b", 3}}, alloc)
}

func TestDrawWinners_ZeroWinnersRequested(t *testing.T) {
	winners, err := DrawWinners(Allocation{{"a", 1}}, 0, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Empty(t, winners)
}

func TestDrawWinners_WeightsFavourLargerHolders(t *testing.T) {
	alloc := Allocation{{"small", 1}, {"big", 99}}
	rng := rand.New(rand.NewSource(99))

	bigFirst := 0
	for i := 0; i < 1000; i++ {
		winners, err := DrawWinners(alloc, 1, rng)
		require.NoError(t, err)
		if winners[0] == "big" {
			bigFirst++
		}
	}
	assert.Greater(t, bigFirst, 900)
}
