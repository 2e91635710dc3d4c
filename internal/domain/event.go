package domain

import "time"

type EventStatus string

const (
	EventStatusDraft  EventStatus = "draft"
	EventStatusLive   EventStatus = "live"
	EventStatusClosed EventStatus = "closed"
	EventStatusDrawn  EventStatus = "drawn"
)

var EventStatuses = []EventStatus{EventStatusDraft, EventStatusLive, EventStatusClosed, EventStatusDrawn}

type Event struct {
	ID        string      `json:"id"`
	Code      string      `json:"code"`
	Title     string      `json:"title"`
	PriceNOK  int64       `json:"price_nok"`
	Status    EventStatus `json:"status"`
	DrawAt    *time.Time  `json:"draw_at"`
	CreatedAt time.Time   `json:"created_at"`
}

// IsLive reports whether tickets can be bought for the event.
func (e Event) IsLive() bool {
	return e.Status == EventStatusLive
}

// EventUpdate holds the fields an organizer may change after orders exist.
type EventUpdate struct {
	Status      *EventStatus
	DrawAt      *time.Time
	ClearDrawAt bool
}
