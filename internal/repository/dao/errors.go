package dao

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventCodeExists      = errors.New("event code already exists")
	ErrOrderNotFound        = errors.New("order not found")
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrDuplicateOrder       = errors.New("duplicate order detected (idempotency_key conflict)")
	ErrTicketNumberConflict = errors.New("ticket number conflict")
	ErrAlreadyDrawn         = errors.New("this ticket has already been drawn")
	ErrNoTicketsAvailable   = errors.New("no tickets available to draw")
	ErrAllocatorUnavailable = errors.New("database function get_next_ticket_number unavailable")
	ErrDrawUnavailable      = errors.New("database function draw_next_winner unavailable")
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func isPgCode(err error, code string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == code
}

func isUniqueViolation(err error) bool {
	return isPgCode(err, pgerrcode.UniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	return isPgCode(err, pgerrcode.ForeignKeyViolation)
}

func isUndefinedFunction(err error) bool {
	return isPgCode(err, pgerrcode.UndefinedFunction)
}
