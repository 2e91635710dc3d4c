package repository

import "github.com/loddgo/loddgo-api/internal/repository/dao"

var (
	ErrEventNotFound        = dao.ErrEventNotFound
	ErrEventCodeExists      = dao.ErrEventCodeExists
	ErrOrderNotFound        = dao.ErrOrderNotFound
	ErrTicketNotFound       = dao.ErrTicketNotFound
	ErrDuplicateOrder       = dao.ErrDuplicateOrder
	ErrTicketNumberConflict = dao.ErrTicketNumberConflict
	ErrAlreadyDrawn         = dao.ErrAlreadyDrawn
	ErrNoTicketsAvailable   = dao.ErrNoTicketsAvailable
	ErrAllocatorUnavailable = dao.ErrAllocatorUnavailable
	ErrDrawUnavailable      = dao.ErrDrawUnavailable
)
