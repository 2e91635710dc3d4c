package repository

import (
	"context"
	"fmt"

	"github.com/loddgo/loddgo-api/internal/domain"
	"github.com/loddgo/loddgo-api/internal/repository/dao"
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByCode(ctx context.Context, code string) (dao.Event, error)
	FindByID(ctx context.Context, id string) (dao.Event, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, code string, fields map[string]interface{}) (dao.Event, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) domainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:        e.ID,
		Code:      e.Code,
		Title:     e.Title,
		PriceNOK:  e.PriceNOK,
		Status:    string(e.Status),
		DrawAt:    e.DrawAt,
		CreatedAt: e.CreatedAt,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:        e.ID,
		Code:      e.Code,
		Title:     e.Title,
		PriceNOK:  e.PriceNOK,
		Status:    domain.EventStatus(e.Status),
		DrawAt:    e.DrawAt,
		CreatedAt: e.CreatedAt,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByCode(ctx context.Context, code string) (domain.Event, error) {
	event, err := r.dao.FindByCode(ctx, code)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByCode -> %w", err)
	}

	return r.daoToDomain(event), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (domain.Event, error) {
	event, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(event), nil
}

func (r *EventRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	exists, err := r.dao.CodeExists(ctx, code)
	if err != nil {
		return false, fmt.Errorf("r.dao.CodeExists -> %w", err)
	}

	return exists, nil
}

// Update changes the status and draw time of an event. Fields left nil in
// the update are not touched.
func (r *EventRepository) Update(ctx context.Context, code string, update domain.EventUpdate) (domain.Event, error) {
	fields := make(map[string]interface{})
	if update.Status != nil {
		fields["status"] = string(*update.Status)
	}
	if update.ClearDrawAt {
		fields["draw_at"] = nil
	} else if update.DrawAt != nil {
		fields["draw_at"] = *update.DrawAt
	}

	if len(fields) == 0 {
		return r.FindByCode(ctx, code)
	}

	updated, err := r.dao.Update(ctx, code, fields)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}
