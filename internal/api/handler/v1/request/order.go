package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateOrderRequest struct {
	EventCode        string  `json:"event_code" binding:"required"`
	Qty              int     `json:"qty" binding:"required"`
	BuyerDisplayName *string `json:"buyer_display_name"`
	IdempotencyKey   *string `json:"idempotency_key"`
}

func (req *CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventCode, validation.Required, validation.Length(1, 64)),
		validation.Field(&req.Qty, validation.Required, validation.Min(1)),
		validation.Field(&req.BuyerDisplayName, validation.Length(0, 100)),
		validation.Field(&req.IdempotencyKey, validation.Length(0, 255)),
	)
}

type CreateDrawRequest struct {
	EventCode           string `json:"event_code" binding:"required"`
	WinningTicketNumber int64  `json:"winning_ticket_number" binding:"required"`
	WinningOrderID      string `json:"winning_order_id" binding:"required"`
	Method              string `json:"method"`
}

func (req *CreateDrawRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventCode, validation.Required),
		validation.Field(&req.WinningTicketNumber, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.WinningOrderID, validation.Required, is.UUID),
		validation.Field(&req.Method, validation.Length(0, 32)),
	)
}
