package v1

import (
	"errors"
	"fmt"

	"github.com/loddgo/loddgo-api/internal/api/handler/v1/response"
	"github.com/loddgo/loddgo-api/internal/service"
)

var (
	notFoundErrs = []error{
		service.ErrEventNotFound,
		service.ErrOrderNotFound,
		service.ErrTicketNotFound,
		service.ErrNoDraws,
	}
	conflictErrs = []error{
		service.ErrDuplicateOrder,
		service.ErrIdempotencyKeyReused,
		service.ErrTicketNumberConflict,
		service.ErrAlreadyDrawn,
		service.ErrNoTicketsAvailable,
		service.ErrEventCodeExists,
	}
	badRequestErrs = []error{
		service.ErrInvalidQuantity,
		service.ErrEventNotLive,
		service.ErrOrderMismatch,
	}
)

func matchErr(err error, candidates []error) (error, bool) {
	for _, candidate := range candidates {
		if errors.Is(err, candidate) {
			return candidate, true
		}
	}
	return nil, false
}

// serviceErr maps an error returned by a service onto a response. Known
// errors keep their own message; anything else becomes a logged 500.
func serviceErr(op string, err error) *response.Err {
	if _, ok := matchErr(err, badRequestErrs); ok {
		return response.ErrBadRequest(err)
	}
	if sentinel, ok := matchErr(err, notFoundErrs); ok {
		return response.ErrNotFoundFrom(sentinel)
	}
	if sentinel, ok := matchErr(err, conflictErrs); ok {
		return response.ErrConflict(sentinel)
	}

	return response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err))
}
