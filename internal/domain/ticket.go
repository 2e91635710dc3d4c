package domain

import "time"

type Ticket struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	OrderID      string    `json:"order_id"`
	TicketNumber int64     `json:"ticket_number"`
	CreatedAt    time.Time `json:"created_at"`
}
