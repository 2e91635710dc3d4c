package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/loddgo/loddgo-api/internal/repository"
)

var (
	ErrEventNotFound        = repository.ErrEventNotFound
	ErrEventCodeExists      = repository.ErrEventCodeExists
	ErrOrderNotFound        = repository.ErrOrderNotFound
	ErrTicketNotFound       = repository.ErrTicketNotFound
	ErrDuplicateOrder       = repository.ErrDuplicateOrder
	ErrTicketNumberConflict = repository.ErrTicketNumberConflict
	ErrAlreadyDrawn         = repository.ErrAlreadyDrawn
	ErrNoTicketsAvailable   = repository.ErrNoTicketsAvailable
	ErrAllocatorUnavailable = repository.ErrAllocatorUnavailable
	ErrDrawUnavailable      = repository.ErrDrawUnavailable
)

var (
	ErrEventNotLive         = errors.New("event is not live")
	ErrInvalidQuantity      = errors.New("invalid ticket quantity")
	ErrIdempotencyKeyReused = errors.New("idempotency key was already used for a different purchase")
	ErrOrderMismatch        = errors.New("winning order ID does not match ticket order")
	ErrNoDraws              = errors.New("no draws found for this event")
	ErrEventCodeUnavailable = errors.New("unable to generate unique event code")
)

// EventPublisher delivers domain events to other services. mq.Publisher
// implements it.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type nopPublisher struct{}

func (nopPublisher) PublishJSON(context.Context, string, any) error { return nil }

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
