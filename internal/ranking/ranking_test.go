package ranking

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casynetic/WagerBoard_Go/internal/domain"
)

func rec(name, amount string) domain.AffiliateRecord {
	return domain.AffiliateRecord{Username: name, WageredAmount: domain.ParseAmount(amount)}
}

func TestRank(t *testing.T) {
	t.Run("sorts descending with contiguous ranks", func(t *testing.T) {
		records := []domain.AffiliateRecord{
			rec("a", "100"),
			rec("b", "500"),
			rec("c", "250"),
		}

		got := Rank(records)

		require.Len(t, got, 3)
		assert.Equal(t, []string{"b", "c", "a"}, usernames(got))
		for i, e := range got {
			assert.Equal(t, i+1, e.Rank)
		}
	})

	t.Run("ties keep input order", func(t *testing.T) {
		records := []domain.AffiliateRecord{
			rec("first", "100"),
			rec("top", "300"),
			rec("second", "100"),
			rec("third", "100.00"),
		}

		got := Rank(records)

		assert.Equal(t, []string{"top", "first", "second", "third"}, usernames(got))
		assert.Equal(t, 4, got[3].Rank)
	})

	t.Run("malformed amounts rank as zero", func(t *testing.T) {
		records := []domain.AffiliateRecord{
			rec("broken", "n/a"),
			rec("ok", "1"),
		}

		got := Rank(records)

		assert.Equal(t, []string{"ok", "broken"}, usernames(got))
		assert.True(t, got[1].WageredAmount.IsZero())
	})

	t.Run("empty input", func(t *testing.T) {
		got := Rank(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		records := []domain.AffiliateRecord{rec("a", "1"), rec("b", "2")}
		Rank(records)
		assert.Equal(t, "a", records[0].Username)
	})
}

func TestTopN(t *testing.T) {
	records := []domain.AffiliateRecord{
		rec("a", "10"), rec("b", "20"), rec("c", "30"),
		rec("d", "40"), rec("e", "50"), rec("f", "60"),
	}

	tests := []struct {
		name     string
		n        int
		expected []string
	}{
		{"top five", 5, []string{"f", "e", "d", "c", "b"}},
		{"more than available", 10, []string{"f", "e", "d", "c", "b", "a"}},
		{"zero", 0, []string{}},
		{"negative", -1, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, usernames(TopN(records, tt.n)))
		})
	}
}

func TestFindRank(t *testing.T) {
	records := []domain.AffiliateRecord{
		rec("Alice", "100"),
		rec("bob", "900"),
		rec("alice", "50"),
	}

	t.Run("case insensitive match", func(t *testing.T) {
		e, ok := FindRank(records, "BOB")
		require.True(t, ok)
		assert.Equal(t, 1, e.Rank)
		assert.Equal(t, "bob", e.Username)
	})

	t.Run("duplicate usernames return best rank", func(t *testing.T) {
		e, ok := FindRank(records, "alice")
		require.True(t, ok)
		assert.Equal(t, 2, e.Rank)
		assert.True(t, decimal.NewFromInt(100).Equal(e.WageredAmount))
	})

	t.Run("not found", func(t *testing.T) {
		_, ok := FindRank(records, "carol")
		assert.False(t, ok)
	})

	t.Run("prefix is not a match", func(t *testing.T) {
		_, ok := FindRank(records, "ali")
		assert.False(t, ok)
	})
}

func usernames(entries []domain.LeaderboardEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Username)
	}
	return out
}
