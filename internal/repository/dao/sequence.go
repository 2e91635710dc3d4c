package dao

import (
	"context"
	"fmt"

	"github.com/jackc/pgerrcode"
	"gorm.io/gorm"
)

type TicketSequence struct {
	EventID    string `gorm:"type:uuid;primaryKey"`
	LastNumber int64  `gorm:"not null"`
}

// SequenceAllocator hands out contiguous blocks of ticket numbers per event
// through get_next_ticket_number. It never reads the current maximum itself.
type SequenceAllocator struct {
	db *gorm.DB
}

func NewSequenceAllocator(db *gorm.DB) *SequenceAllocator {
	return &SequenceAllocator{
		db: db,
	}
}

// Allocate reserves qty numbers for the event and returns the first one.
// Called inside a transaction, the reservation is released on rollback.
func (a *SequenceAllocator) Allocate(ctx context.Context, eventID string, qty int) (int64, error) {
	var start int64

	row := a.db.WithContext(ctx).Raw("SELECT get_next_ticket_number(?, ?)", eventID, qty).Row()
	if err := row.Scan(&start); err != nil {
		switch {
		case isPgCode(err, pgerrcode.NoDataFound), isForeignKeyViolation(err):
			return 0, ErrEventNotFound
		case isUndefinedFunction(err):
			return 0, ErrAllocatorUnavailable
		default:
			return 0, fmt.Errorf("%w: %w", ErrAllocatorUnavailable, err)
		}
	}

	if start < 1 {
		return 0, fmt.Errorf("%w: invalid ticket number %d", ErrAllocatorUnavailable, start)
	}

	return start, nil
}
