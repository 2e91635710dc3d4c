package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Draw struct {
	ID                  string    `gorm:"type:uuid;primaryKey"`
	EventID             string    `gorm:"type:uuid;not null;uniqueIndex:idx_draws_event_ticket,priority:1"`
	WinningTicketNumber int64     `gorm:"not null;uniqueIndex:idx_draws_event_ticket,priority:2"`
	WinningOrderID      string    `gorm:"type:uuid;not null"`
	Method              string    `gorm:"not null"`
	DrawnAt             time.Time `gorm:"not null;default:now()"`
}

func (d *Draw) BeforeCreate(*gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

type DrawDAO struct {
	db *gorm.DB
}

func NewDrawDAO(db *gorm.DB) *DrawDAO {
	return &DrawDAO{
		db: db,
	}
}

func drawLockKey(eventID string) string {
	return "draw:" + eventID
}

func (d *DrawDAO) FindTicket(ctx context.Context, eventID string, number int64) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND ticket_number = ?", eventID, number).
		Take(&ticket)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

// Insert records a draw while holding the same per-event advisory lock that
// draw_next_winner takes, so manual and random draws never interleave.
// drawn_at always comes from the database clock, as in draw_next_winner.
func (d *DrawDAO) Insert(ctx context.Context, draw Draw) (Draw, error) {
	draw.DrawnAt = time.Time{}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", drawLockKey(draw.EventID)).Error; err != nil {
			return fmt.Errorf("tx.Exec -> %w", err)
		}

		return tx.Create(&draw).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return Draw{}, ErrAlreadyDrawn
		}
		if isForeignKeyViolation(err) {
			return Draw{}, ErrTicketNotFound
		}

		return Draw{}, err
	}

	return draw, nil
}

func (d *DrawDAO) DrawNext(ctx context.Context, eventID, method string) (Draw, error) {
	var draws []Draw

	result := d.db.WithContext(ctx).Raw("SELECT * FROM draw_next_winner(?, ?)", eventID, method).Scan(&draws)
	if result.Error != nil {
		if isUndefinedFunction(result.Error) {
			return Draw{}, ErrDrawUnavailable
		}
		if isUniqueViolation(result.Error) {
			return Draw{}, ErrAlreadyDrawn
		}

		return Draw{}, result.Error
	}

	if len(draws) == 0 {
		return Draw{}, ErrNoTicketsAvailable
	}

	return draws[0], nil
}

func (d *DrawDAO) FindByEventID(ctx context.Context, eventID string) ([]Draw, error) {
	var draws []Draw

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("drawn_at ASC, id ASC").
		Find(&draws)
	if result.Error != nil {
		return nil, result.Error
	}

	return draws, nil
}
