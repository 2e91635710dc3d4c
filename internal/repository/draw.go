package repository

import (
	"context"
	"fmt"

	"github.com/loddgo/loddgo-api/internal/domain"
	"github.com/loddgo/loddgo-api/internal/repository/dao"
)

type DrawDAO interface {
	FindTicket(ctx context.Context, eventID string, number int64) (dao.Ticket, error)
	Insert(ctx context.Context, draw dao.Draw) (dao.Draw, error)
	DrawNext(ctx context.Context, eventID, method string) (dao.Draw, error)
	FindByEventID(ctx context.Context, eventID string) ([]dao.Draw, error)
}

type DrawRepository struct {
	dao DrawDAO
}

func NewDrawRepository(dao DrawDAO) *DrawRepository {
	return &DrawRepository{
		dao: dao,
	}
}

func (r *DrawRepository) daoToDomain(d dao.Draw) domain.Draw {
	return domain.Draw{
		ID:                  d.ID,
		EventID:             d.EventID,
		WinningTicketNumber: d.WinningTicketNumber,
		WinningOrderID:      d.WinningOrderID,
		Method:              d.Method,
		DrawnAt:             d.DrawnAt,
	}
}

func (r *DrawRepository) FindTicket(ctx context.Context, eventID string, number int64) (domain.Ticket, error) {
	ticket, err := r.dao.FindTicket(ctx, eventID, number)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindTicket -> %w", err)
	}

	return ticketDaoToDomain(ticket), nil
}

func (r *DrawRepository) Create(ctx context.Context, draw domain.Draw) (domain.Draw, error) {
	created, err := r.dao.Insert(ctx, dao.Draw{
		EventID:             draw.EventID,
		WinningTicketNumber: draw.WinningTicketNumber,
		WinningOrderID:      draw.WinningOrderID,
		Method:              draw.Method,
	})
	if err != nil {
		return domain.Draw{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *DrawRepository) DrawNext(ctx context.Context, eventID, method string) (domain.Draw, error) {
	draw, err := r.dao.DrawNext(ctx, eventID, method)
	if err != nil {
		return domain.Draw{}, fmt.Errorf("r.dao.DrawNext -> %w", err)
	}

	return r.daoToDomain(draw), nil
}

func (r *DrawRepository) FindByEventID(ctx context.Context, eventID string) ([]domain.Draw, error) {
	draws, err := r.dao.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventID -> %w", err)
	}

	result := make([]domain.Draw, len(draws))
	for i, d := range draws {
		result[i] = r.daoToDomain(d)
	}

	return result, nil
}
