package domain

import "time"

const (
	DrawMethodManual = "manual"
	DrawMethodRandom = "random"
)

type Draw struct {
	ID                  string    `json:"id"`
	EventID             string    `json:"event_id"`
	WinningTicketNumber int64     `json:"winning_ticket_number"`
	WinningOrderID      string    `json:"winning_order_id"`
	Method              string    `json:"method"`
	DrawnAt             time.Time `json:"drawn_at"`
}

// Winner pairs a draw with the order that holds the winning ticket.
type Winner struct {
	Draw  Draw   `json:"draw"`
	Order *Order `json:"order"`
}
