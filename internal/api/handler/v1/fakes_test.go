package v1

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/loddgo/loddgo-api/internal/domain"
	"github.com/loddgo/loddgo-api/internal/service"
)

type fakeEventService struct {
	event   domain.Event
	report  domain.EventReport
	winners []domain.Winner
	err     error
	created []domain.Event
	updates []domain.EventUpdate
}

func (f *fakeEventService) GetByCode(_ context.Context, code string) (domain.Event, error) {
	if f.err != nil {
		return domain.Event{}, f.err
	}
	if code != f.event.Code {
		return domain.Event{}, service.ErrEventNotFound
	}
	return f.event, nil
}

func (f *fakeEventService) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	if f.err != nil {
		return domain.Event{}, f.err
	}
	event.ID = "event-1"
	f.created = append(f.created, event)
	return event, nil
}

func (f *fakeEventService) CreateWithGeneratedCode(ctx context.Context, event domain.Event) (domain.Event, error) {
	event.Code = "GENERATED000001"
	return f.Create(ctx, event)
}

func (f *fakeEventService) Update(_ context.Context, code string, update domain.EventUpdate) (domain.Event, error) {
	if f.err != nil {
		return domain.Event{}, f.err
	}
	f.updates = append(f.updates, update)
	event := f.event
	if update.Status != nil {
		event.Status = *update.Status
	}
	return event, nil
}

func (f *fakeEventService) Report(ctx context.Context, code string) (domain.EventReport, error) {
	if _, err := f.GetByCode(ctx, code); err != nil {
		return domain.EventReport{}, err
	}
	return f.report, nil
}

func (f *fakeEventService) Winners(ctx context.Context, code string) ([]domain.Winner, error) {
	if _, err := f.GetByCode(ctx, code); err != nil {
		return nil, err
	}
	if len(f.winners) == 0 {
		return nil, service.ErrNoDraws
	}
	return f.winners, nil
}

type fakeOrderService struct {
	purchase  domain.Purchase
	details   domain.OrderDetails
	purchases []domain.Purchase
	err       error
	inputs    []service.PurchaseInput
}

func (f *fakeOrderService) Purchase(_ context.Context, in service.PurchaseInput) (domain.Purchase, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return domain.Purchase{}, f.err
	}
	return f.purchase, nil
}

func (f *fakeOrderService) GetOrderDetails(_ context.Context, _ string) (domain.OrderDetails, error) {
	if f.err != nil {
		return domain.OrderDetails{}, f.err
	}
	return f.details, nil
}

func (f *fakeOrderService) Purchases(_ context.Context, _ string) ([]domain.Purchase, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.purchases, nil
}

type fakeDrawService struct {
	draw   domain.Draw
	err    error
	manual []service.ManualDrawInput
}

func (f *fakeDrawService) DrawManual(_ context.Context, in service.ManualDrawInput) (domain.Draw, error) {
	f.manual = append(f.manual, in)
	if f.err != nil {
		return domain.Draw{}, f.err
	}
	return f.draw, nil
}

func (f *fakeDrawService) DrawRandom(_ context.Context, _ string) (domain.Draw, error) {
	if f.err != nil {
		return domain.Draw{}, f.err
	}
	return f.draw, nil
}

type recordingBroadcaster struct {
	mu    sync.Mutex
	codes []string
	draws []domain.Draw
}

func (r *recordingBroadcaster) Publish(code string, draw domain.Draw) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes = append(r.codes, code)
	r.draws = append(r.draws, draw)
}

func newTestRouter(events *fakeEventService, orders *fakeOrderService, draws *fakeDrawService, live DrawBroadcaster) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	eventHandler := NewEventHandler(events)
	orderHandler := NewOrderHandler(orders)
	drawHandler := NewDrawHandler(draws, live)

	api := router.Group("/api/v1")
	api.POST("/orders", orderHandler.HandleCreateOrder)
	api.GET("/orders/:id", orderHandler.HandleGetOrder)
	api.GET("/orders/:id/purchases", orderHandler.HandleGetOrderPurchases)
	api.POST("/events", eventHandler.HandleCreateEvent)
	api.GET("/events/:code", eventHandler.HandleGetEvent)
	api.GET("/events/:code/stats", eventHandler.HandleGetEventStats)
	api.GET("/events/:code/result", eventHandler.HandleGetEventResult)
	api.POST("/events/:code/draw", drawHandler.HandleDrawNext)
	api.POST("/admin/draws", drawHandler.HandleCreateDraw)
	api.POST("/admin/events", eventHandler.HandleAdminCreateEvent)
	api.PATCH("/admin/events/:code", eventHandler.HandleUpdateEvent)
	router.GET("/", HandleHealthcheck)

	return router
}

func strPtr(s string) *string {
	return &s
}
