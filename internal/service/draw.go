package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/loddgo/loddgo-api/internal/domain"
	"github.com/loddgo/loddgo-api/internal/metrics"
	"github.com/loddgo/loddgo-api/internal/pkg/mq"
	"github.com/loddgo/loddgo-api/internal/pkg/obs"
)

type DrawRepository interface {
	FindTicket(ctx context.Context, eventID string, number int64) (domain.Ticket, error)
	Create(ctx context.Context, draw domain.Draw) (domain.Draw, error)
	DrawNext(ctx context.Context, eventID, method string) (domain.Draw, error)
}

type ManualDrawInput struct {
	EventCode           string
	WinningTicketNumber int64
	WinningOrderID      string
	Method              string
}

type DrawService struct {
	events    EventLookup
	repo      DrawRepository
	publisher EventPublisher
}

// NewDrawService wires the draw engine. publisher may be nil.
func NewDrawService(events EventLookup, repo DrawRepository, publisher EventPublisher) *DrawService {
	if publisher == nil {
		publisher = nopPublisher{}
	}

	return &DrawService{
		events:    events,
		repo:      repo,
		publisher: publisher,
	}
}

// DrawManual records the organizer's chosen winner. The ticket must exist
// and belong to WinningOrderID; a ticket can only win once.
func (s *DrawService) DrawManual(ctx context.Context, in ManualDrawInput) (draw domain.Draw, err error) {
	ctx, span := obs.Tracer().Start(ctx, "DrawService.DrawManual", trace.WithAttributes(
		attribute.String("event.code", in.EventCode),
		attribute.Int64("draw.ticket_number", in.WinningTicketNumber),
	))
	defer func() { endSpan(span, err) }()

	event, err := s.events.FindByCode(ctx, in.EventCode)
	if err != nil {
		return domain.Draw{}, fmt.Errorf("s.events.FindByCode -> %w", err)
	}

	ticket, err := s.repo.FindTicket(ctx, event.ID, in.WinningTicketNumber)
	if err != nil {
		return domain.Draw{}, fmt.Errorf("s.repo.FindTicket -> %w", err)
	}
	if ticket.OrderID != in.WinningOrderID {
		return domain.Draw{}, ErrOrderMismatch
	}

	method := in.Method
	if method == "" {
		method = domain.DrawMethodManual
	}

	draw, err = s.repo.Create(ctx, domain.Draw{
		EventID:             event.ID,
		WinningTicketNumber: ticket.TicketNumber,
		WinningOrderID:      ticket.OrderID,
		Method:              method,
	})
	if err != nil {
		return domain.Draw{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.recorded(ctx, event, draw)

	return draw, nil
}

// DrawRandom picks a winner uniformly among the tickets of the event that
// have not been drawn yet.
func (s *DrawService) DrawRandom(ctx context.Context, code string) (draw domain.Draw, err error) {
	ctx, span := obs.Tracer().Start(ctx, "DrawService.DrawRandom", trace.WithAttributes(
		attribute.String("event.code", code),
	))
	defer func() { endSpan(span, err) }()

	event, err := s.events.FindByCode(ctx, code)
	if err != nil {
		return domain.Draw{}, fmt.Errorf("s.events.FindByCode -> %w", err)
	}

	draw, err = s.repo.DrawNext(ctx, event.ID, domain.DrawMethodRandom)
	if err != nil {
		return domain.Draw{}, fmt.Errorf("s.repo.DrawNext -> %w", err)
	}

	s.recorded(ctx, event, draw)

	return draw, nil
}

type drawCreated struct {
	DrawID              string `json:"draw_id"`
	EventID             string `json:"event_id"`
	EventCode           string `json:"event_code"`
	WinningTicketNumber int64  `json:"winning_ticket_number"`
	WinningOrderID      string `json:"winning_order_id"`
	Method              string `json:"method"`
}

func (s *DrawService) recorded(ctx context.Context, event domain.Event, draw domain.Draw) {
	metrics.DrawsTotal.WithLabelValues(draw.Method).Inc()

	err := s.publisher.PublishJSON(ctx, mq.RoutingKeyDrawCreated, drawCreated{
		DrawID:              draw.ID,
		EventID:             event.ID,
		EventCode:           event.Code,
		WinningTicketNumber: draw.WinningTicketNumber,
		WinningOrderID:      draw.WinningOrderID,
		Method:              draw.Method,
	})
	if err != nil {
		zap.L().Warn("failed to publish draw.created", zap.String("draw_id", draw.ID), zap.Error(err))
	}
}
