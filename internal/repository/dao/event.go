package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Code      string `gorm:"uniqueIndex:idx_events_code;not null"`
	Title     string `gorm:"not null"`
	PriceNOK  int64  `gorm:"column:price_nok;not null;check:chk_events_price_nok,price_nok >= 0"`
	Status    string `gorm:"not null;index"`
	DrawAt    *time.Time
	CreatedAt time.Time `gorm:"not null"`
}

func (e *Event) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Event{}, ErrEventCodeExists
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByCode(ctx context.Context, code string) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).Where("code = ?", code).Take(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id string) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).Where("id = ?", id).Take(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Event{}).Where("code = ?", code).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// Update applies the given column values to the event identified by code.
func (d *EventDAO) Update(ctx context.Context, code string, fields map[string]interface{}) (Event, error) {
	result := d.db.WithContext(ctx).Model(&Event{}).Where("code = ?", code).Updates(fields)
	if result.Error != nil {
		return Event{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return d.FindByCode(ctx, code)
}
