package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/loddgo/loddgo-api/internal/domain"
	"github.com/loddgo/loddgo-api/internal/repository/dao"
)

type OrderDAO interface {
	WithinTransaction(ctx context.Context, fn func(tx dao.OrderWriter) error) error
	FindByID(ctx context.Context, id string) (dao.Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (dao.Order, error)
	FindByEventID(ctx context.Context, eventID string) ([]dao.Order, error)
	FindByEventAndBuyer(ctx context.Context, eventID, buyer string) ([]dao.Order, error)
	FindTicketsByOrderIDs(ctx context.Context, orderIDs []string) ([]dao.Ticket, error)
	CountTicketsByEventID(ctx context.Context, eventID string) (int64, error)
}

// IdempotencyCache keeps finished purchases by idempotency key so replays
// can be answered without touching the database.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) (domain.Purchase, bool, error)
	Set(ctx context.Context, key string, purchase domain.Purchase) error
}

type nopCache struct{}

func (nopCache) Get(context.Context, string) (domain.Purchase, bool, error) {
	return domain.Purchase{}, false, nil
}

func (nopCache) Set(context.Context, string, domain.Purchase) error { return nil }

type OrderRepository struct {
	dao   OrderDAO
	cache IdempotencyCache
}

// NewOrderRepository wires the order store. cache may be nil.
func NewOrderRepository(dao OrderDAO, cache IdempotencyCache) *OrderRepository {
	if cache == nil {
		cache = nopCache{}
	}

	return &OrderRepository{
		dao:   dao,
		cache: cache,
	}
}

func orderDomainToDao(o domain.Order) dao.Order {
	return dao.Order{
		ID:               o.ID,
		EventID:          o.EventID,
		BuyerDisplayName: o.BuyerDisplayName,
		Qty:              o.Qty,
		AmountNOK:        o.AmountNOK,
		Paid:             o.Paid,
		PaymentProvider:  o.PaymentProvider,
		IdempotencyKey:   o.IdempotencyKey,
		CreatedAt:        o.CreatedAt,
	}
}

func orderDaoToDomain(o dao.Order) domain.Order {
	return domain.Order{
		ID:               o.ID,
		EventID:          o.EventID,
		BuyerDisplayName: o.BuyerDisplayName,
		Qty:              o.Qty,
		AmountNOK:        o.AmountNOK,
		Paid:             o.Paid,
		PaymentProvider:  o.PaymentProvider,
		IdempotencyKey:   o.IdempotencyKey,
		CreatedAt:        o.CreatedAt,
	}
}

func ordersDaoToDomain(orders []dao.Order) []domain.Order {
	result := make([]domain.Order, len(orders))
	for i, o := range orders {
		result[i] = orderDaoToDomain(o)
	}
	return result
}

func ticketDaoToDomain(t dao.Ticket) domain.Ticket {
	return domain.Ticket{
		ID:           t.ID,
		EventID:      t.EventID,
		OrderID:      t.OrderID,
		TicketNumber: t.TicketNumber,
		CreatedAt:    t.CreatedAt,
	}
}

func ticketsDaoToDomain(tickets []dao.Ticket) []domain.Ticket {
	result := make([]domain.Ticket, len(tickets))
	for i, t := range tickets {
		result[i] = ticketDaoToDomain(t)
	}
	return result
}

// Write persists an order and its qty tickets in one transaction. The order
// row is inserted first, then a block of numbers is reserved and the tickets
// are inserted. Any failure rolls back the order and the reservation.
func (r *OrderRepository) Write(ctx context.Context, order domain.Order) (domain.Purchase, error) {
	var (
		created dao.Order
		tickets []dao.Ticket
	)

	err := r.dao.WithinTransaction(ctx, func(tx dao.OrderWriter) error {
		var err error

		created, err = tx.InsertOrder(ctx, orderDomainToDao(order))
		if err != nil {
			return fmt.Errorf("tx.InsertOrder -> %w", err)
		}

		start, err := tx.AllocateTicketNumbers(ctx, created.EventID, created.Qty)
		if err != nil {
			return fmt.Errorf("tx.AllocateTicketNumbers -> %w", err)
		}

		rows := make([]dao.Ticket, created.Qty)
		for i := range rows {
			rows[i] = dao.Ticket{
				EventID:      created.EventID,
				OrderID:      created.ID,
				TicketNumber: start + int64(i),
			}
		}

		tickets, err = tx.InsertTickets(ctx, rows)
		if err != nil {
			return fmt.Errorf("tx.InsertTickets -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("r.dao.WithinTransaction -> %w", err)
	}

	purchase := domain.Purchase{
		Order:   orderDaoToDomain(created),
		Tickets: ticketsDaoToDomain(tickets),
	}

	if order.IdempotencyKey != nil {
		r.remember(ctx, *order.IdempotencyKey, purchase)
	}

	return purchase, nil
}

func (r *OrderRepository) remember(ctx context.Context, key string, purchase domain.Purchase) {
	if err := r.cache.Set(ctx, key, purchase); err != nil {
		zap.L().Warn("failed to cache purchase", zap.String("order_id", purchase.Order.ID), zap.Error(err))
	}
}

// FindPurchaseByIdempotencyKey returns the order created with key and its
// full ticket set.
func (r *OrderRepository) FindPurchaseByIdempotencyKey(ctx context.Context, key string) (domain.Purchase, error) {
	cached, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		zap.L().Warn("failed to read purchase cache", zap.Error(err))
	}
	if ok {
		return cached, nil
	}

	order, err := r.dao.FindByIdempotencyKey(ctx, key)
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("r.dao.FindByIdempotencyKey -> %w", err)
	}

	purchase, err := r.withTickets(ctx, order)
	if err != nil {
		return domain.Purchase{}, err
	}

	r.remember(ctx, key, purchase)

	return purchase, nil
}

func (r *OrderRepository) FindPurchaseByOrderID(ctx context.Context, id string) (domain.Purchase, error) {
	order, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.withTickets(ctx, order)
}

func (r *OrderRepository) withTickets(ctx context.Context, order dao.Order) (domain.Purchase, error) {
	tickets, err := r.dao.FindTicketsByOrderIDs(ctx, []string{order.ID})
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("r.dao.FindTicketsByOrderIDs -> %w", err)
	}

	return domain.Purchase{
		Order:   orderDaoToDomain(order),
		Tickets: ticketsDaoToDomain(tickets),
	}, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (domain.Order, error) {
	order, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return orderDaoToDomain(order), nil
}

// FindByEventID returns the orders of an event, newest first.
func (r *OrderRepository) FindByEventID(ctx context.Context, eventID string) ([]domain.Order, error) {
	orders, err := r.dao.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventID -> %w", err)
	}

	return ordersDaoToDomain(orders), nil
}

// FindPurchasesByBuyer returns every order the named buyer placed for the
// event, newest first, each with its tickets.
func (r *OrderRepository) FindPurchasesByBuyer(ctx context.Context, eventID, buyer string) ([]domain.Purchase, error) {
	orders, err := r.dao.FindByEventAndBuyer(ctx, eventID, buyer)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventAndBuyer -> %w", err)
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	tickets, err := r.dao.FindTicketsByOrderIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindTicketsByOrderIDs -> %w", err)
	}

	byOrder := make(map[string][]domain.Ticket, len(orders))
	for _, t := range tickets {
		byOrder[t.OrderID] = append(byOrder[t.OrderID], ticketDaoToDomain(t))
	}

	purchases := make([]domain.Purchase, len(orders))
	for i, o := range orders {
		purchases[i] = domain.Purchase{
			Order:   orderDaoToDomain(o),
			Tickets: byOrder[o.ID],
		}
	}

	return purchases, nil
}

func (r *OrderRepository) CountTickets(ctx context.Context, eventID string) (int64, error) {
	count, err := r.dao.CountTicketsByEventID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountTicketsByEventID -> %w", err)
	}

	return count, nil
}
