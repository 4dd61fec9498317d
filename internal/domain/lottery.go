package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LotteryWinner is one placement of a draw. Placement 1 is the first drawn.
type LotteryWinner struct {
	Placement int    `json:"placement"`
	Username  string `json:"username"`
	Tickets   int64  `json:"tickets"`
}

// LotteryDraw is a persisted lottery result for a period.
type LotteryDraw struct {
	ID           string          `json:"id"`
	Period       Period          `json:"period"`
	TicketUnit   decimal.Decimal `json:"ticket_unit"`
	Seed         int64           `json:"seed"`
	PoolSize     int             `json:"pool_size"`
	TotalTickets int64           `json:"total_tickets"`
	Winners      []LotteryWinner `json:"winners"`
	DrawnBy      string          `json:"drawn_by,omitempty"`
	DrawnAt      time.Time       `json:"drawn_at"`
}

// UserTickets is a single user's ticket standing for a period.
type UserTickets struct {
	Username      string          `json:"username"`
	WageredAmount decimal.Decimal `json:"wagered_amount"`
	Tickets       int64           `json:"tickets"`
	TotalTickets  int64           `json:"total_tickets"`
	TicketUnit    decimal.Decimal `json:"ticket_unit"`
}
