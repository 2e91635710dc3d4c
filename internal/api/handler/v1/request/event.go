package request

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/loddgo/loddgo-api/internal/domain"
	"github.com/loddgo/loddgo-api/internal/pkg/eventcode"
)

var (
	errInvalidStatus  = errors.New("status must be one of: draft, live, closed, drawn")
	errInvalidCode    = errors.New("code must be 1-64 characters without spaces, '/', '?', '#' or '%'")
	errInvalidDrawAt  = errors.New("draw_at must be an RFC3339 timestamp or null")
	errNothingToPatch = errors.New("status or draw_at is required")
)

func statusRule(value interface{}) error {
	s, _ := value.(*string)
	if s == nil {
		return nil
	}
	for _, status := range domain.EventStatuses {
		if *s == string(status) {
			return nil
		}
	}
	return errInvalidStatus
}

func drawAtRule(value interface{}) error {
	s, _ := value.(*string)
	if s == nil || *s == "" {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, *s); err != nil {
		return errInvalidDrawAt
	}
	return nil
}

func codeRule(value interface{}) error {
	s, _ := value.(string)
	if !eventcode.Valid(s) {
		return errInvalidCode
	}
	return nil
}

func parseDrawAt(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	return &t
}

// CreateEventRequest is used by the public create endpoint, which generates
// the code from the title.
type CreateEventRequest struct {
	Title    string  `json:"title" binding:"required"`
	PriceNOK *int64  `json:"price_nok" binding:"required"`
	Status   *string `json:"status"`
	DrawAt   *string `json:"draw_at"`
}

// Normalize trims the title. Call it before Validate.
func (req *CreateEventRequest) Normalize() {
	req.Title = strings.TrimSpace(req.Title)
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.PriceNOK, validation.NotNil, validation.Min(int64(0))),
		validation.Field(&req.Status, validation.By(statusRule)),
		validation.Field(&req.DrawAt, validation.By(drawAtRule)),
	)
}

func (req *CreateEventRequest) ToDomain() domain.Event {
	event := domain.Event{
		Title:  req.Title,
		DrawAt: parseDrawAt(req.DrawAt),
	}
	if req.PriceNOK != nil {
		event.PriceNOK = *req.PriceNOK
	}
	if req.Status != nil {
		event.Status = domain.EventStatus(*req.Status)
	}
	return event
}

// AdminCreateEventRequest lets an admin pick the code.
type AdminCreateEventRequest struct {
	CreateEventRequest
	Code string `json:"code" binding:"required"`
}

func (req *AdminCreateEventRequest) Normalize() {
	req.CreateEventRequest.Normalize()
	req.Code = strings.TrimSpace(req.Code)
}

func (req *AdminCreateEventRequest) Validate() error {
	if err := req.CreateEventRequest.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Code, validation.Required, validation.By(codeRule)),
	)
}

func (req *AdminCreateEventRequest) ToDomain() domain.Event {
	event := req.CreateEventRequest.ToDomain()
	event.Code = req.Code
	return event
}

// UpdateEventRequest changes status and draw time. An explicit
// "draw_at": null or "" clears the draw time.
type UpdateEventRequest struct {
	Status *string        `json:"status"`
	DrawAt OptionalString `json:"draw_at"`
}

func (req *UpdateEventRequest) Validate() error {
	if req.Status == nil && !req.DrawAt.Set {
		return errNothingToPatch
	}
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.By(statusRule)),
		validation.Field(&req.DrawAt, validation.By(func(value interface{}) error {
			o, _ := value.(OptionalString)
			return drawAtRule(o.Value)
		})),
	)
}

func (req *UpdateEventRequest) ToDomain() domain.EventUpdate {
	var update domain.EventUpdate
	if req.Status != nil {
		status := domain.EventStatus(*req.Status)
		update.Status = &status
	}
	if req.DrawAt.Set {
		update.DrawAt = parseDrawAt(req.DrawAt.Value)
		update.ClearDrawAt = update.DrawAt == nil
	}
	return update
}
