package domain

type EventStats struct {
	TotalOrders      int   `json:"total_orders"`
	TotalTickets     int64 `json:"total_tickets"`
	TotalRevenue     int64 `json:"total_revenue"`
	UniqueBuyers     int   `json:"unique_buyers"`
	TotalDraws       int   `json:"total_draws"`
	RemainingTickets int64 `json:"remaining_tickets"`
}

type EventReport struct {
	Event        Event      `json:"event"`
	Stats        EventStats `json:"stats"`
	RecentOrders []Order    `json:"recent_orders"`
	Draws        []Draw     `json:"draws"`
}

// NewEventStats aggregates the figures shown on the organizer dashboard.
func NewEventStats(orders []Order, ticketCount int64, draws []Draw) EventStats {
	stats := EventStats{
		TotalOrders:  len(orders),
		TotalTickets: ticketCount,
		TotalDraws:   len(draws),
	}

	buyers := make(map[string]struct{})
	for _, o := range orders {
		stats.TotalRevenue += o.AmountNOK
		if o.BuyerDisplayName != nil && *o.BuyerDisplayName != "" {
			buyers[*o.BuyerDisplayName] = struct{}{}
		}
	}
	stats.UniqueBuyers = len(buyers)

	stats.RemainingTickets = ticketCount - int64(len(draws))
	if stats.RemainingTickets < 0 {
		stats.RemainingTickets = 0
	}

	return stats
}
