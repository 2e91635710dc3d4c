package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loddgo/loddgo-api/internal/api/handler/v1/request"
	"github.com/loddgo/loddgo-api/internal/api/handler/v1/response"
	"github.com/loddgo/loddgo-api/internal/domain"
	"github.com/loddgo/loddgo-api/internal/service"
)

type DrawService interface {
	DrawManual(ctx context.Context, in service.ManualDrawInput) (domain.Draw, error)
	DrawRandom(ctx context.Context, code string) (domain.Draw, error)
}

// DrawBroadcaster pushes a recorded draw to live viewers of an event.
type DrawBroadcaster interface {
	Publish(eventCode string, draw domain.Draw)
}

type DrawHandler struct {
	svc  DrawService
	live DrawBroadcaster
}

func NewDrawHandler(svc DrawService, live DrawBroadcaster) *DrawHandler {
	return &DrawHandler{
		svc:  svc,
		live: live,
	}
}

// HandleCreateDraw godoc
// @Summary      Record a winner
// @Description  Records the given ticket as a winner. winning_order_id must own the ticket.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateDrawRequest  true  "Draw"
// @Success      201    {object}  domain.Draw
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /admin/draws [post]
// @Security AdminKey
func (h *DrawHandler) HandleCreateDraw(ctx *gin.Context) {
	var input request.CreateDrawRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	draw, err := h.svc.DrawManual(ctx.Request.Context(), service.ManualDrawInput{
		EventCode:           input.EventCode,
		WinningTicketNumber: input.WinningTicketNumber,
		WinningOrderID:      input.WinningOrderID,
		Method:              input.Method,
	})
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleCreateDraw -> h.svc.DrawManual", err))
		return
	}

	h.live.Publish(input.EventCode, draw)
	ctx.JSON(http.StatusCreated, draw)
}

// HandleDrawNext godoc
// @Summary      Draw a random winner
// @Description  Picks a random ticket among the tickets of the event that have not been drawn.
// @Tags         events
// @Produce      json
// @Param        code  path      string  true  "Event code"
// @Success      201   {object}  domain.Draw
// @Failure      404   {object}  response.Err
// @Failure      409   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /events/{code}/draw [post]
func (h *DrawHandler) HandleDrawNext(ctx *gin.Context) {
	code := ctx.Param("code")

	draw, err := h.svc.DrawRandom(ctx.Request.Context(), code)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleDrawNext -> h.svc.DrawRandom", err))
		return
	}

	h.live.Publish(code, draw)
	ctx.JSON(http.StatusCreated, draw)
}
