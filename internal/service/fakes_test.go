package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/loddgo/loddgo-api/internal/domain"
)

// memStore is an in-memory stand-in for the Postgres store. A single mutex
// plays the role of the per-event row lock and the draw advisory lock.
type memStore struct {
	mu      sync.Mutex
	seq     int
	events  map[string]domain.Event
	orders  []domain.Order
	tickets []domain.Ticket
	draws   []domain.Draw
	last    map[string]int64

	failTicketInsert bool
	writes           int
}

func newMemStore() *memStore {
	return &memStore{
		events: make(map[string]domain.Event),
		last:   make(map[string]int64),
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) addEvent(code string, price int64, status domain.EventStatus) domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	event := domain.Event{ID: m.nextID("event"), Code: code, Title: code, PriceNOK: price, Status: status, CreatedAt: time.Now()}
	m.events[code] = event
	return event
}

type memEvents struct{ *memStore }

func (m memEvents) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[event.Code]; ok {
		return domain.Event{}, ErrEventCodeExists
	}
	event.ID = m.nextID("event")
	m.events[event.Code] = event
	return event, nil
}

func (m memEvents) FindByCode(_ context.Context, code string) (domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	event, ok := m.events[code]
	if !ok {
		return domain.Event{}, ErrEventNotFound
	}
	return event, nil
}

func (m memEvents) FindByID(_ context.Context, id string) (domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, event := range m.events {
		if event.ID == id {
			return event, nil
		}
	}
	return domain.Event{}, ErrEventNotFound
}

func (m memEvents) CodeExists(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.events[code]
	return ok, nil
}

func (m memEvents) Update(_ context.Context, code string, update domain.EventUpdate) (domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	event, ok := m.events[code]
	if !ok {
		return domain.Event{}, ErrEventNotFound
	}
	if update.Status != nil {
		event.Status = *update.Status
	}
	if update.ClearDrawAt {
		event.DrawAt = nil
	} else if update.DrawAt != nil {
		event.DrawAt = update.DrawAt
	}
	m.events[code] = event
	return event, nil
}

type memOrders struct{ *memStore }

func (m memOrders) Write(_ context.Context, order domain.Order) (domain.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writes++
	if order.IdempotencyKey != nil {
		for _, o := range m.orders {
			if o.IdempotencyKey != nil && *o.IdempotencyKey == *order.IdempotencyKey {
				return domain.Purchase{}, ErrDuplicateOrder
			}
		}
	}

	order.ID = m.nextID("order")
	order.CreatedAt = time.Now()
	start := m.last[order.EventID] + 1

	if m.failTicketInsert {
		return domain.Purchase{}, ErrTicketNumberConflict
	}

	tickets := make([]domain.Ticket, order.Qty)
	for i := range tickets {
		tickets[i] = domain.Ticket{
			ID:           m.nextID("ticket"),
			EventID:      order.EventID,
			OrderID:      order.ID,
			TicketNumber: start + int64(i),
		}
	}

	m.last[order.EventID] = start + int64(order.Qty) - 1
	m.orders = append(m.orders, order)
	m.tickets = append(m.tickets, tickets...)

	return domain.Purchase{Order: order, Tickets: tickets}, nil
}

func (m memOrders) purchaseLocked(order domain.Order) domain.Purchase {
	p := domain.Purchase{Order: order}
	for _, t := range m.tickets {
		if t.OrderID == order.ID {
			p.Tickets = append(p.Tickets, t)
		}
	}
	return p
}

func (m memOrders) FindPurchaseByIdempotencyKey(_ context.Context, key string) (domain.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range m.orders {
		if o.IdempotencyKey != nil && *o.IdempotencyKey == key {
			return m.purchaseLocked(o), nil
		}
	}
	return domain.Purchase{}, ErrOrderNotFound
}

func (m memOrders) FindPurchaseByOrderID(_ context.Context, id string) (domain.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range m.orders {
		if o.ID == id {
			return m.purchaseLocked(o), nil
		}
	}
	return domain.Purchase{}, ErrOrderNotFound
}

func (m memOrders) FindPurchasesByBuyer(_ context.Context, eventID, buyer string) ([]domain.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var purchases []domain.Purchase
	for i := len(m.orders) - 1; i >= 0; i-- {
		o := m.orders[i]
		if o.EventID == eventID && o.BuyerDisplayName != nil && *o.BuyerDisplayName == buyer {
			purchases = append(purchases, m.purchaseLocked(o))
		}
	}
	return purchases, nil
}

func (m memOrders) FindByID(_ context.Context, id string) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, ErrOrderNotFound
}

func (m memOrders) FindByEventID(_ context.Context, eventID string) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var orders []domain.Order
	for i := len(m.orders) - 1; i >= 0; i-- {
		if m.orders[i].EventID == eventID {
			orders = append(orders, m.orders[i])
		}
	}
	return orders, nil
}

func (m memOrders) CountTickets(_ context.Context, eventID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, t := range m.tickets {
		if t.EventID == eventID {
			n++
		}
	}
	return n, nil
}

type memDraws struct{ *memStore }

func (m memDraws) FindTicket(_ context.Context, eventID string, number int64) (domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.tickets {
		if t.EventID == eventID && t.TicketNumber == number {
			return t, nil
		}
	}
	return domain.Ticket{}, ErrTicketNotFound
}

func (m memDraws) drawnLocked(eventID string, number int64) bool {
	for _, d := range m.draws {
		if d.EventID == eventID && d.WinningTicketNumber == number {
			return true
		}
	}
	return false
}

func (m memDraws) Create(_ context.Context, draw domain.Draw) (domain.Draw, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.drawnLocked(draw.EventID, draw.WinningTicketNumber) {
		return domain.Draw{}, ErrAlreadyDrawn
	}
	draw.ID = m.nextID("draw")
	draw.DrawnAt = time.Now()
	m.draws = append(m.draws, draw)
	return draw, nil
}

func (m memDraws) DrawNext(_ context.Context, eventID, method string) (domain.Draw, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var pool []domain.Ticket
	for _, t := range m.tickets {
		if t.EventID == eventID && !m.drawnLocked(eventID, t.TicketNumber) {
			pool = append(pool, t)
		}
	}
	if len(pool) == 0 {
		return domain.Draw{}, ErrNoTicketsAvailable
	}

	winner := pool[rand.Intn(len(pool))]
	draw := domain.Draw{
		ID:                  m.nextID("draw"),
		EventID:             eventID,
		WinningTicketNumber: winner.TicketNumber,
		WinningOrderID:      winner.OrderID,
		Method:              method,
		DrawnAt:             time.Now(),
	}
	m.draws = append(m.draws, draw)
	return draw, nil
}

func (m memDraws) FindByEventID(_ context.Context, eventID string) ([]domain.Draw, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var draws []domain.Draw
	for _, d := range m.draws {
		if d.EventID == eventID {
			draws = append(draws, d)
		}
	}
	return draws, nil
}

type published struct {
	key     string
	payload any
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []published
	err      error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.messages = append(p.messages, published{key: key, payload: v})
	return p.err
}

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	keys := make([]string, len(p.messages))
	for i, m := range p.messages {
		keys[i] = m.key
	}
	return keys
}

func strPtr(s string) *string { return &s }
