package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AffiliateRecord is one participant's aggregated wager total for a queried date range.
type AffiliateRecord struct {
	Username      string          `json:"username"`
	WageredAmount decimal.Decimal `json:"wagered_amount"`
}

// LeaderboardEntry is a ranked affiliate record.
type LeaderboardEntry struct {
	Rank          int             `json:"rank"`
	Username      string          `json:"username"`
	WageredAmount decimal.Decimal `json:"wagered_amount"`
}

// SameUsername reports whether two affiliate usernames identify the same participant.
func SameUsername(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// ParseAmount converts a raw wagered amount into a non-negative decimal.
// Malformed, missing and negative amounts are treated as zero.
func ParseAmount(v interface{}) decimal.Decimal {
	var d decimal.Decimal
	var err error

	switch t := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		d = t
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(t))
	case json.Number:
		d, err = decimal.NewFromString(t.String())
	case float64:
		d = decimal.NewFromFloat(t)
	case float32:
		d = decimal.NewFromFloat32(t)
	case int:
		d = decimal.NewFromInt(int64(t))
	case int64:
		d = decimal.NewFromInt(t)
	default:
		d, err = decimal.NewFromString(fmt.Sprint(t))
	}

	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Period is an inclusive date range used to query the affiliate API.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod parses two YYYY-MM-DD dates into a Period.
func NewPeriod(start, end string) (Period, error) {
	s, err := time.Parse(DateLayout, strings.TrimSpace(start))
	if err != nil {
		return Period{}, fmt.Errorf("%w: start date must be YYYY-MM-DD", ErrInvalidPeriod)
	}
	e, err := time.Parse(DateLayout, strings.TrimSpace(end))
	if err != nil {
		return Period{}, fmt.Errorf("%w: end date must be YYYY-MM-DD", ErrInvalidPeriod)
	}
	p := Period{Start: s, End: e}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// Validate checks that the period is well formed.
func (p Period) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidPeriod)
	}
	if p.End.Before(p.Start) {
		return fmt.Errorf("%w: the end date cannot be before the start date", ErrInvalidPeriod)
	}
	return nil
}

// StartDate returns the start as YYYY-MM-DD.
func (p Period) StartDate() string { return p.Start.Format(DateLayout) }

// EndDate returns the end as YYYY-MM-DD.
func (p Period) EndDate() string { return p.End.Format(DateLayout) }

// Key identifies the period in caches and locks.
func (p Period) Key() string { return p.StartDate() + ":" + p.EndDate() }

// RefreshLockKey names the lock held while the period's records are refetched.
func (p Period) RefreshLockKey() string { return "refresh:" + p.Key() }

var zeroDate = time.Time{}.Format(DateLayout)

type periodJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// MarshalJSON encodes the period as YYYY-MM-DD strings. An unset period
// encodes as empty strings.
func (p Period) MarshalJSON() ([]byte, error) {
	if p.IsZero() {
		return json.Marshal(periodJSON{})
	}
	return json.Marshal(periodJSON{Start: p.StartDate(), End: p.EndDate()})
}

// UnmarshalJSON decodes a period of YYYY-MM-DD strings. Empty or zero dates
// decode to the unset period; any other value must be a valid range.
func (p *Period) UnmarshalJSON(data []byte) error {
	var raw periodJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if isUnsetDate(raw.Start) && isUnsetDate(raw.End) {
		*p = Period{}
		return nil
	}
	parsed, err := NewPeriod(raw.Start, raw.End)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// IsZero reports whether the period is unset.
func (p Period) IsZero() bool { return p.Start.IsZero() && p.End.IsZero() }

func isUnsetDate(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == zeroDate
}

// Prizes describes the rewards advertised for a leaderboard period.
type Prizes struct {
	First          string           `json:"first"`
	Second         string           `json:"second"`
	Third          string           `json:"third"`
	BonusThreshold *decimal.Decimal `json:"bonus_threshold,omitempty"`
	BonusReward    string           `json:"bonus_reward,omitempty"`
}

// PeriodConfig is the persisted current leaderboard window and its prizes.
type PeriodConfig struct {
	Period    Period    `json:"period"`
	Prizes    Prizes    `json:"prizes"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LeaderboardInfo summarises the current period for the info command.
type LeaderboardInfo struct {
	Config          PeriodConfig `json:"config"`
	Participants    int          `json:"participants"`
	BonusQualifiers int          `json:"bonus_qualifiers"`
}

// PeriodThrough returns the period from since to the day of now. Days are
// UTC calendar days whatever the location of now. A zero or future since
// collapses to the single day of now.
func PeriodThrough(since, now time.Time) Period {
	end := startOfDay(now)
	start := startOfDay(since)
	if since.IsZero() || start.After(end) {
		start = end
	}
	return Period{Start: start, End: end}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
