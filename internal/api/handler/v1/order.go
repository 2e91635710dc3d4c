package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/loddgo/loddgo-api/internal/api/handler/v1/request"
	"github.com/loddgo/loddgo-api/internal/api/handler/v1/response"
	"github.com/loddgo/loddgo-api/internal/domain"
	"github.com/loddgo/loddgo-api/internal/service"
)

const ReplayedHeader = "Idempotent-Replayed"

type OrderService interface {
	Purchase(ctx context.Context, in service.PurchaseInput) (domain.Purchase, error)
	GetOrderDetails(ctx context.Context, id string) (domain.OrderDetails, error)
	Purchases(ctx context.Context, id string) ([]domain.Purchase, error)
}

type OrderHandler struct {
	svc OrderService
}

func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{
		svc: svc,
	}
}

// HandleCreateOrder godoc
// @Summary      Buy tickets
// @Description  Creates an order and its sequentially numbered tickets. Repeating a request with the same idempotency_key returns the original order.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateOrderRequest  true  "Order"
// @Success      201    {object}  domain.Purchase
// @Failure      400    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /orders [post]
func (h *OrderHandler) HandleCreateOrder(ctx *gin.Context) {
	var input request.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	purchase, err := h.svc.Purchase(ctx.Request.Context(), service.PurchaseInput{
		EventCode:        input.EventCode,
		Qty:              input.Qty,
		BuyerDisplayName: input.BuyerDisplayName,
		IdempotencyKey:   input.IdempotencyKey,
	})
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleCreateOrder -> h.svc.Purchase", err))
		return
	}

	if purchase.Replayed {
		ctx.Header(ReplayedHeader, "true")
	}
	ctx.JSON(http.StatusCreated, purchase)
}

// HandleGetOrder godoc
// @Summary      Get an order
// @Description  Returns the order with every ticket its buyer holds in the event and the winning numbers so far.
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  domain.OrderDetails
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /orders/{id} [get]
func (h *OrderHandler) HandleGetOrder(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.RenderErr(ctx, response.ErrNotFound("order", "id", id))
		return
	}

	details, err := h.svc.GetOrderDetails(ctx.Request.Context(), id)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleGetOrder -> h.svc.GetOrderDetails", err))
		return
	}

	ctx.JSON(http.StatusOK, details)
}

// HandleGetOrderPurchases godoc
// @Summary      List the buyer's orders
// @Description  All orders placed under the same buyer name in the same event, newest first.
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {array}   domain.Purchase
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /orders/{id}/purchases [get]
func (h *OrderHandler) HandleGetOrderPurchases(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.RenderErr(ctx, response.ErrNotFound("order", "id", id))
		return
	}

	purchases, err := h.svc.Purchases(ctx.Request.Context(), id)
	if err != nil {
		response.RenderErr(ctx, serviceErr("HandleGetOrderPurchases -> h.svc.Purchases", err))
		return
	}

	ctx.JSON(http.StatusOK, purchases)
}
