package domain

import "time"

type Order struct {
	ID               string    `json:"id"`
	EventID          string    `json:"event_id"`
	BuyerDisplayName *string   `json:"buyer_display_name"`
	Qty              int       `json:"qty"`
	AmountNOK        int64     `json:"amount_nok"`
	Paid             bool      `json:"paid"`
	PaymentProvider  string    `json:"payment_provider"`
	IdempotencyKey   *string   `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
}

// BuyerName returns the display name or "Anonymous" when none was given.
func (o Order) BuyerName() string {
	if o.BuyerDisplayName == nil || *o.BuyerDisplayName == "" {
		return "Anonymous"
	}
	return *o.BuyerDisplayName
}

// Purchase is an order together with the tickets issued for it.
type Purchase struct {
	Order   Order    `json:"order"`
	Tickets []Ticket `json:"tickets"`
	// Replayed is set when the purchase was returned for a repeated
	// idempotency key instead of being created.
	Replayed bool `json:"-"`
}

// TicketNumbers returns the ticket numbers of the purchase in issue order.
func (p Purchase) TicketNumbers() []int64 {
	numbers := make([]int64, len(p.Tickets))
	for i, t := range p.Tickets {
		numbers[i] = t.TicketNumber
	}
	return numbers
}

// OrderDetails is the buyer-facing view of an order: all tickets the same
// named buyer holds in the event and the numbers drawn so far.
type OrderDetails struct {
	Order                Order    `json:"order"`
	Event                Event    `json:"event"`
	Tickets              []Ticket `json:"tickets"`
	TicketCount          int      `json:"ticket_count"`
	WinningTicketNumbers []int64  `json:"winning_ticket_numbers"`
}
