package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/loddgo/loddgo-api/internal/domain"
	"github.com/loddgo/loddgo-api/internal/pkg/eventcode"
)

const (
	maxCodeAttempts  = 10
	recentOrderLimit = 10
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByCode(ctx context.Context, code string) (domain.Event, error)
	FindByID(ctx context.Context, id string) (domain.Event, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, code string, update domain.EventUpdate) (domain.Event, error)
}

type EventOrderReader interface {
	FindByID(ctx context.Context, id string) (domain.Order, error)
	FindByEventID(ctx context.Context, eventID string) ([]domain.Order, error)
	CountTickets(ctx context.Context, eventID string) (int64, error)
}

type EventDrawReader interface {
	FindByEventID(ctx context.Context, eventID string) ([]domain.Draw, error)
}

type EventService struct {
	repo   EventRepository
	orders EventOrderReader
	draws  EventDrawReader
	now    func() time.Time
}

func NewEventService(repo EventRepository, orders EventOrderReader, draws EventDrawReader) *EventService {
	return &EventService{
		repo:   repo,
		orders: orders,
		draws:  draws,
		now:    time.Now,
	}
}

func (s *EventService) GetByCode(ctx context.Context, code string) (domain.Event, error) {
	event, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByCode -> %w", err)
	}

	return event, nil
}

// Create stores an event under the code chosen by the caller.
func (s *EventService) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	if event.Status == "" {
		event.Status = domain.EventStatusLive
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// CreateWithGeneratedCode derives the code from the title and retries with a
// fresh time suffix while the code is taken.
func (s *EventService) CreateWithGeneratedCode(ctx context.Context, event domain.Event) (domain.Event, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := eventcode.Generate(event.Title, s.now())

		exists, err := s.repo.CodeExists(ctx, code)
		if err != nil {
			return domain.Event{}, fmt.Errorf("s.repo.CodeExists -> %w", err)
		}
		if exists {
			continue
		}

		event.Code = code
		created, err := s.Create(ctx, event)
		if errors.Is(err, ErrEventCodeExists) {
			continue
		}

		return created, err
	}

	return domain.Event{}, ErrEventCodeUnavailable
}

func (s *EventService) Update(ctx context.Context, code string, update domain.EventUpdate) (domain.Event, error) {
	event, err := s.repo.Update(ctx, code, update)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return event, nil
}

// Report loads the organizer dashboard for an event. Orders, ticket count
// and draws are read concurrently.
func (s *EventService) Report(ctx context.Context, code string) (domain.EventReport, error) {
	event, err := s.GetByCode(ctx, code)
	if err != nil {
		return domain.EventReport{}, err
	}

	var (
		orders      []domain.Order
		ticketCount int64
		draws       []domain.Draw
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if orders, err = s.orders.FindByEventID(gctx, event.ID); err != nil {
			return fmt.Errorf("s.orders.FindByEventID -> %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if ticketCount, err = s.orders.CountTickets(gctx, event.ID); err != nil {
			return fmt.Errorf("s.orders.CountTickets -> %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if draws, err = s.draws.FindByEventID(gctx, event.ID); err != nil {
			return fmt.Errorf("s.draws.FindByEventID -> %w", err)
		}
		return nil
	})
	if err = g.Wait(); err != nil {
		return domain.EventReport{}, err
	}

	recent := orders
	if len(recent) > recentOrderLimit {
		recent = recent[:recentOrderLimit]
	}

	newestFirst := make([]domain.Draw, len(draws))
	for i, d := range draws {
		newestFirst[len(draws)-1-i] = d
	}

	return domain.EventReport{
		Event:        event,
		Stats:        domain.NewEventStats(orders, ticketCount, draws),
		RecentOrders: recent,
		Draws:        newestFirst,
	}, nil
}

// Winners returns every draw of the event, oldest first, with the winning
// order attached.
func (s *EventService) Winners(ctx context.Context, code string) ([]domain.Winner, error) {
	event, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	draws, err := s.draws.FindByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("s.draws.FindByEventID -> %w", err)
	}
	if len(draws) == 0 {
		return nil, ErrNoDraws
	}

	winners := make([]domain.Winner, len(draws))
	for i, d := range draws {
		winners[i] = domain.Winner{Draw: d}

		order, err := s.orders.FindByID(ctx, d.WinningOrderID)
		if err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				continue
			}
			return nil, fmt.Errorf("s.orders.FindByID -> %w", err)
		}
		winners[i].Order = &order
	}

	return winners, nil
}
