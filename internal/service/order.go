package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/loddgo/loddgo-api/internal/config"
	"github.com/loddgo/loddgo-api/internal/domain"
	"github.com/loddgo/loddgo-api/internal/metrics"
	"github.com/loddgo/loddgo-api/internal/pkg/mq"
	"github.com/loddgo/loddgo-api/internal/pkg/obs"
)

type OrderRepository interface {
	Write(ctx context.Context, order domain.Order) (domain.Purchase, error)
	FindPurchaseByIdempotencyKey(ctx context.Context, key string) (domain.Purchase, error)
	FindPurchaseByOrderID(ctx context.Context, id string) (domain.Purchase, error)
	FindPurchasesByBuyer(ctx context.Context, eventID, buyer string) ([]domain.Purchase, error)
}

type EventLookup interface {
	FindByCode(ctx context.Context, code string) (domain.Event, error)
	FindByID(ctx context.Context, id string) (domain.Event, error)
}

// PurchaseInput is a request to buy Qty tickets for the event with
// EventCode. A nil IdempotencyKey disables replay protection.
type PurchaseInput struct {
	EventCode        string
	Qty              int
	BuyerDisplayName *string
	IdempotencyKey   *string
}

type OrderService struct {
	events    EventLookup
	repo      OrderRepository
	draws     EventDrawReader
	publisher EventPublisher
	conf      *config.RaffleConfig
}

// NewOrderService wires the purchase flow. publisher may be nil.
func NewOrderService(events EventLookup, repo OrderRepository, draws EventDrawReader, publisher EventPublisher, conf *config.RaffleConfig) *OrderService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	if conf == nil {
		conf = &config.RaffleConfig{}
	}
	if conf.MaxQty <= 0 {
		conf.MaxQty = 200
	}
	if conf.PaymentProvider == "" {
		conf.PaymentProvider = "mock"
	}

	return &OrderService{
		events:    events,
		repo:      repo,
		draws:     draws,
		publisher: publisher,
		conf:      conf,
	}
}

// Purchase buys tickets for a live event. Payment is mocked and always
// succeeds. When the idempotency key was used before for the same event and
// quantity, the original purchase is returned with Replayed set and nothing
// is written.
func (s *OrderService) Purchase(ctx context.Context, in PurchaseInput) (purchase domain.Purchase, err error) {
	ctx, span := obs.Tracer().Start(ctx, "OrderService.Purchase", trace.WithAttributes(
		attribute.String("event.code", in.EventCode),
		attribute.Int("order.qty", in.Qty),
	))
	defer func() { endSpan(span, err) }()

	if in.Qty < 1 || in.Qty > s.conf.MaxQty {
		return domain.Purchase{}, fmt.Errorf("%w: qty must be a number between 1 and %d", ErrInvalidQuantity, s.conf.MaxQty)
	}

	event, err := s.events.FindByCode(ctx, in.EventCode)
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("s.events.FindByCode -> %w", err)
	}
	if !event.IsLive() {
		return domain.Purchase{}, fmt.Errorf("%w (status: %s)", ErrEventNotLive, event.Status)
	}

	key := normalize(in.IdempotencyKey)
	if key != nil {
		replay, found, err := s.checkReplay(ctx, event, in.Qty, *key)
		if err != nil {
			return domain.Purchase{}, err
		}
		if found {
			metrics.OrderReplaysTotal.Inc()
			span.SetAttributes(attribute.Bool("order.replayed", true))
			return replay, nil
		}
	}

	purchase, err = s.repo.Write(ctx, domain.Order{
		EventID:          event.ID,
		BuyerDisplayName: normalize(in.BuyerDisplayName),
		Qty:              in.Qty,
		AmountNOK:        event.PriceNOK * int64(in.Qty),
		Paid:             true,
		PaymentProvider:  s.conf.PaymentProvider,
		IdempotencyKey:   key,
	})
	if err != nil {
		metrics.PurchaseFailuresTotal.WithLabelValues(failureReason(err)).Inc()
		return domain.Purchase{}, fmt.Errorf("s.repo.Write -> %w", err)
	}

	metrics.OrdersCreatedTotal.Inc()
	metrics.TicketsIssuedTotal.Add(float64(len(purchase.Tickets)))
	span.SetAttributes(attribute.String("order.id", purchase.Order.ID))

	if err := s.publisher.PublishJSON(ctx, mq.RoutingKeyOrderCreated, orderCreated{
		OrderID:       purchase.Order.ID,
		EventID:       event.ID,
		EventCode:     event.Code,
		Qty:           purchase.Order.Qty,
		AmountNOK:     purchase.Order.AmountNOK,
		TicketNumbers: purchase.TicketNumbers(),
	}); err != nil {
		zap.L().Warn("failed to publish order.created", zap.String("order_id", purchase.Order.ID), zap.Error(err))
	}

	return purchase, nil
}

type orderCreated struct {
	OrderID       string  `json:"order_id"`
	EventID       string  `json:"event_id"`
	EventCode     string  `json:"event_code"`
	Qty           int     `json:"qty"`
	AmountNOK     int64   `json:"amount_nok"`
	TicketNumbers []int64 `json:"ticket_numbers"`
}

// checkReplay looks up an earlier purchase made with key. It never
// allocates numbers or writes rows.
func (s *OrderService) checkReplay(ctx context.Context, event domain.Event, qty int, key string) (domain.Purchase, bool, error) {
	purchase, err := s.repo.FindPurchaseByIdempotencyKey(ctx, key)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return domain.Purchase{}, false, nil
		}
		return domain.Purchase{}, false, fmt.Errorf("s.repo.FindPurchaseByIdempotencyKey -> %w", err)
	}

	if purchase.Order.EventID != event.ID || purchase.Order.Qty != qty {
		return domain.Purchase{}, false, ErrIdempotencyKeyReused
	}

	purchase.Replayed = true

	return purchase, true, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateOrder):
		return "duplicate_order"
	case errors.Is(err, ErrTicketNumberConflict):
		return "ticket_conflict"
	case errors.Is(err, ErrAllocatorUnavailable):
		return "allocator_unavailable"
	case errors.Is(err, ErrEventNotFound):
		return "event_not_found"
	default:
		return "internal"
	}
}

func normalize(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// GetOrderDetails returns the order with every ticket its buyer holds in the
// same event. Anonymous orders only show their own tickets.
func (s *OrderService) GetOrderDetails(ctx context.Context, id string) (domain.OrderDetails, error) {
	purchases, err := s.Purchases(ctx, id)
	if err != nil {
		return domain.OrderDetails{}, err
	}

	var order domain.Order
	var tickets []domain.Ticket
	for _, p := range purchases {
		if p.Order.ID == id {
			order = p.Order
		}
		tickets = append(tickets, p.Tickets...)
	}
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].TicketNumber < tickets[j].TicketNumber })

	event, err := s.events.FindByID(ctx, order.EventID)
	if err != nil {
		return domain.OrderDetails{}, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	draws, err := s.draws.FindByEventID(ctx, order.EventID)
	if err != nil {
		return domain.OrderDetails{}, fmt.Errorf("s.draws.FindByEventID -> %w", err)
	}

	winning := make([]int64, len(draws))
	for i, d := range draws {
		winning[i] = d.WinningTicketNumber
	}

	return domain.OrderDetails{
		Order:                order,
		Event:                event,
		Tickets:              tickets,
		TicketCount:          len(tickets),
		WinningTicketNumbers: winning,
	}, nil
}

// Purchases returns all orders the buyer of order id placed in its event,
// newest first.
func (s *OrderService) Purchases(ctx context.Context, id string) ([]domain.Purchase, error) {
	purchase, err := s.repo.FindPurchaseByOrderID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindPurchaseByOrderID -> %w", err)
	}

	if purchase.Order.BuyerDisplayName == nil {
		return []domain.Purchase{purchase}, nil
	}

	purchases, err := s.repo.FindPurchasesByBuyer(ctx, purchase.Order.EventID, *purchase.Order.BuyerDisplayName)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindPurchasesByBuyer -> %w", err)
	}
	if len(purchases) == 0 {
		return []domain.Purchase{purchase}, nil
	}

	return purchases, nil
}
