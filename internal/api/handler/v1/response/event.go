package response

import (
	"time"

	"github.com/loddgo/loddgo-api/internal/domain"
)

type EventSummary struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

type DrawSummary struct {
	WinningTicketNumber int64     `json:"winning_ticket_number"`
	Method              string    `json:"method"`
	DrawnAt             time.Time `json:"drawn_at"`
}

type WinnerSummary struct {
	BuyerDisplayName *string   `json:"buyer_display_name"`
	OrderID          string    `json:"order_id"`
	TicketsPurchased int       `json:"tickets_purchased"`
	OrderDate        time.Time `json:"order_date"`
}

type DrawResult struct {
	Draw   DrawSummary    `json:"draw"`
	Winner *WinnerSummary `json:"winner"`
}

// EventResult lists every draw of an event. Draw and Winner repeat the first
// draw for clients that only show a single prize.
type EventResult struct {
	Event  EventSummary   `json:"event"`
	Draw   DrawSummary    `json:"draw"`
	Winner *WinnerSummary `json:"winner"`
	Draws  []DrawResult   `json:"draws"`
}

func NewEventResult(event domain.Event, winners []domain.Winner) EventResult {
	result := EventResult{
		Event: EventSummary{Code: event.Code, Title: event.Title},
		Draws: make([]DrawResult, len(winners)),
	}

	for i, w := range winners {
		r := DrawResult{
			Draw: DrawSummary{
				WinningTicketNumber: w.Draw.WinningTicketNumber,
				Method:              w.Draw.Method,
				DrawnAt:             w.Draw.DrawnAt,
			},
		}
		if w.Order != nil {
			r.Winner = &WinnerSummary{
				BuyerDisplayName: w.Order.BuyerDisplayName,
				OrderID:          w.Order.ID,
				TicketsPurchased: w.Order.Qty,
				OrderDate:        w.Order.CreatedAt,
			}
		}
		result.Draws[i] = r
	}

	if len(result.Draws) > 0 {
		result.Draw = result.Draws[0].Draw
		result.Winner = result.Draws[0].Winner
	}

	return result
}

type RecentOrder struct {
	ID        string    `json:"id"`
	BuyerName string    `json:"buyer_name"`
	Qty       int       `json:"qty"`
	AmountNOK int64     `json:"amount_nok"`
	CreatedAt time.Time `json:"created_at"`
}

type EventStats struct {
	Event        domain.Event      `json:"event"`
	Stats        domain.EventStats `json:"stats"`
	RecentOrders []RecentOrder     `json:"recent_orders"`
	Draws        []domain.Draw     `json:"draws"`
}

func NewEventStats(report domain.EventReport) EventStats {
	recent := make([]RecentOrder, len(report.RecentOrders))
	for i, o := range report.RecentOrders {
		recent[i] = RecentOrder{
			ID:        o.ID,
			BuyerName: o.BuyerName(),
			Qty:       o.Qty,
			AmountNOK: o.AmountNOK,
			CreatedAt: o.CreatedAt,
		}
	}

	draws := report.Draws
	if draws == nil {
		draws = []domain.Draw{}
	}

	return EventStats{
		Event:        report.Event,
		Stats:        report.Stats,
		RecentOrders: recent,
		Draws:        draws,
	}
}
