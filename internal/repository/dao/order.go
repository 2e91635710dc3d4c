package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	ID               string `gorm:"type:uuid;primaryKey"`
	EventID          string `gorm:"type:uuid;not null;index"`
	BuyerDisplayName *string
	Qty              int       `gorm:"not null;check:chk_orders_qty_positive,qty > 0"`
	AmountNOK        int64     `gorm:"column:amount_nok;not null"`
	Paid             bool      `gorm:"not null"`
	PaymentProvider  string    `gorm:"not null"`
	IdempotencyKey   *string   `gorm:"uniqueIndex:idx_orders_idempotency_key"`
	CreatedAt        time.Time `gorm:"not null"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type Ticket struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	EventID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_tickets_event_number,priority:1"`
	OrderID      string    `gorm:"type:uuid;not null;index"`
	TicketNumber int64     `gorm:"not null;uniqueIndex:idx_tickets_event_number,priority:2;check:chk_tickets_number,ticket_number > 0"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (t *Ticket) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// OrderWriter is the set of operations that make up one purchase. Inside
// OrderDAO.WithinTransaction they all share a single database transaction.
type OrderWriter interface {
	InsertOrder(ctx context.Context, order Order) (Order, error)
	AllocateTicketNumbers(ctx context.Context, eventID string, qty int) (int64, error)
	InsertTickets(ctx context.Context, tickets []Ticket) ([]Ticket, error)
}

type OrderDAO struct {
	db        *gorm.DB
	allocator *SequenceAllocator
}

func NewOrderDAO(db *gorm.DB) *OrderDAO {
	return &OrderDAO{
		db:        db,
		allocator: NewSequenceAllocator(db),
	}
}

func (d *OrderDAO) WithinTransaction(ctx context.Context, fn func(tx OrderWriter) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewOrderDAO(tx))
	})
}

func (d *OrderDAO) InsertOrder(ctx context.Context, order Order) (Order, error) {
	result := d.db.WithContext(ctx).Create(&order)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Order{}, ErrDuplicateOrder
		}
		if isForeignKeyViolation(result.Error) {
			return Order{}, ErrEventNotFound
		}

		return Order{}, result.Error
	}

	return order, nil
}

func (d *OrderDAO) AllocateTicketNumbers(ctx context.Context, eventID string, qty int) (int64, error) {
	return d.allocator.Allocate(ctx, eventID, qty)
}

func (d *OrderDAO) InsertTickets(ctx context.Context, tickets []Ticket) ([]Ticket, error) {
	result := d.db.WithContext(ctx).Create(&tickets)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil, ErrTicketNumberConflict
		}

		return nil, result.Error
	}

	return tickets, nil
}

func (d *OrderDAO) FindByID(ctx context.Context, id string) (Order, error) {
	var order Order

	result := d.db.WithContext(ctx).Where("id = ?", id).Take(&order)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Order{}, ErrOrderNotFound
		}

		return Order{}, result.Error
	}

	return order, nil
}

func (d *OrderDAO) FindByIdempotencyKey(ctx context.Context, key string) (Order, error) {
	var order Order

	result := d.db.WithContext(ctx).Where("idempotency_key = ?", key).Take(&order)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Order{}, ErrOrderNotFound
		}

		return Order{}, result.Error
	}

	return order, nil
}

func (d *OrderDAO) FindByEventID(ctx context.Context, eventID string) ([]Order, error) {
	var orders []Order

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}

	return orders, nil
}

func (d *OrderDAO) FindByEventAndBuyer(ctx context.Context, eventID, buyer string) ([]Order, error) {
	var orders []Order

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND buyer_display_name = ?", eventID, buyer).
		Order("created_at DESC").
		Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}

	return orders, nil
}

func (d *OrderDAO) FindTicketsByOrderIDs(ctx context.Context, orderIDs []string) ([]Ticket, error) {
	var tickets []Ticket
	if len(orderIDs) == 0 {
		return tickets, nil
	}

	result := d.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("ticket_number ASC").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

func (d *OrderDAO) CountTicketsByEventID(ctx context.Context, eventID string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Ticket{}).Where("event_id = ?", eventID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
