package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loddgo/loddgo-api/internal/api/handler/v1/request"
	"github.com/loddgo/loddgo-api/internal/api/handler/v1/response"
	"github.com/loddgo/loddgo-api/internal/domain"
)

type EventService interface {
	GetByCode(ctx context.Context, code string) (domain.Event, error)
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	CreateWithGeneratedCode(ctx context.Context, event domain.Event) (domain.Event, error)
	Update(ctx context.Context, code string, update domain.EventUpdate) (domain.Event, error)
	Report(ctx context.Context, code string) (domain.EventReport, error)
	Winners(ctx context.Context, code string) ([]domain.Winner, error)
}

type EventHandler struct {
	svc EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{
		svc: svc,
	}
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Description  Creates a raffle event. The public code is generated from the title.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateEventRequest  true  "Event details"
// @Success      201    {object}  domain.Event
// @Failure      400    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /events [post]
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	var input request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	input.Normalize()
	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.CreateWithGeneratedCode(ctx.Request.Context(), input.ToDomain())
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleCreateEvent -> h.svc.CreateWithGeneratedCode", err))
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleAdminCreateEvent godoc
// @Summary      Create an event with a chosen code
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        input  body      request.AdminCreateEventRequest  true  "Event details"
// @Success      201    {object}  domain.Event
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /admin/events [post]
// @Security AdminKey
func (h *EventHandler) HandleAdminCreateEvent(ctx *gin.Context) {
	var input request.AdminCreateEventRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	input.Normalize()
	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.Create(ctx.Request.Context(), input.ToDomain())
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleAdminCreateEvent -> h.svc.Create", err))
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleUpdateEvent godoc
// @Summary      Update event status or draw time
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        code   path      string                      true  "Event code"
// @Param        input  body      request.UpdateEventRequest  true  "Fields to change"
// @Success      200    {object}  domain.Event
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /admin/events/{code} [patch]
// @Security AdminKey
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	var input request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.Update(ctx.Request.Context(), ctx.Param("code"), input.ToDomain())
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleUpdateEvent -> h.svc.Update", err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleGetEvent godoc
// @Summary      Get an event by code
// @Tags         events
// @Produce      json
// @Param        code  path      string  true  "Event code"
// @Success      200   {object}  domain.Event
// @Failure      404   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /events/{code} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	event, err := h.svc.GetByCode(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleGetEvent -> h.svc.GetByCode", err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleGetEventStats godoc
// @Summary      Event dashboard
// @Description  Totals, the ten most recent orders and all draws, newest first.
// @Tags         events
// @Produce      json
// @Param        code  path      string  true  "Event code"
// @Success      200   {object}  response.EventStats
// @Failure      404   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /events/{code}/stats [get]
func (h *EventHandler) HandleGetEventStats(ctx *gin.Context) {
	report, err := h.svc.Report(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleGetEventStats -> h.svc.Report", err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewEventStats(report))
}

// HandleGetEventResult godoc
// @Summary      Draw results
// @Tags         events
// @Produce      json
// @Param        code  path      string  true  "Event code"
// @Success      200   {object}  response.EventResult
// @Failure      404   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /events/{code}/result [get]
func (h *EventHandler) HandleGetEventResult(ctx *gin.Context) {
	code := ctx.Param("code")

	event, err := h.svc.GetByCode(ctx.Request.Context(), code)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleGetEventResult -> h.svc.GetByCode", err))
		return
	}

	winners, err := h.svc.Winners(ctx.Request.Context(), code)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleGetEventResult -> h.svc.Winners", err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewEventResult(event, winners))
}
