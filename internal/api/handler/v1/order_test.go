package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loddgo/loddgo-api/internal/domain"
	"github.com/loddgo/loddgo-api/internal/service"
)

const testOrderID = "0b7e1c6a-3c1f-4b5e-9d7a-2f4b8c9e1a20"

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func samplePurchase() domain.Purchase {
	return domain.Purchase{
		Order: domain.Order{ID: testOrderID, EventID: "event-1", Qty: 2, AmountNOK: 100, Paid: true},
		Tickets: []domain.Ticket{
			{ID: "t-1", OrderID: testOrderID, EventID: "event-1", TicketNumber: 1},
			{ID: "t-2", OrderID: testOrderID, EventID: "event-1", TicketNumber: 2},
		},
	}
}

func TestOrderHandler_HandleCreateOrder(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		orders := &fakeOrderService{purchase: samplePurchase()}
		router := newTestRouter(&fakeEventService{}, orders, &fakeDrawService{}, &recordingBroadcaster{})

		w := doRequest(router, http.MethodPost, "/api/v1/orders",
			`{"event_code":"SPRING","qty":2,"buyer_display_name":"Kari","idempotency_key":"k-1"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Empty(t, w.Header().Get(ReplayedHeader))

		var body domain.Purchase
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, testOrderID, body.Order.ID)
		assert.Equal(t, []int64{1, 2}, body.TicketNumbers())

		require.Len(t, orders.inputs, 1)
		assert.Equal(t, "SPRING", orders.inputs[0].EventCode)
		assert.Equal(t, 2, orders.inputs[0].Qty)
		assert.Equal(t, "Kari", *orders.inputs[0].BuyerDisplayName)
		assert.Equal(t, "k-1", *orders.inputs[0].IdempotencyKey)
		assert.NotContains(t, w.Body.String(), "idempotency_key")
	})

	t.Run("replayed", func(t *testing.T) {
		purchase := samplePurchase()
		purchase.Replayed = true
		router := newTestRouter(&fakeEventService{}, &fakeOrderService{purchase: purchase}, &fakeDrawService{}, &recordingBroadcaster{})

		w := doRequest(router, http.MethodPost, "/api/v1/orders", `{"event_code":"SPRING","qty":2,"idempotency_key":"k-1"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get(ReplayedHeader))
	})

	t.Run("quantity limit is left to the service", func(t *testing.T) {
		orders := &fakeOrderService{purchase: samplePurchase()}
		router := newTestRouter(&fakeEventService{}, orders, &fakeDrawService{}, &recordingBroadcaster{})

		w := doRequest(router, http.MethodPost, "/api/v1/orders", `{"event_code":"SPRING","qty":350}`)

		require.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, orders.inputs, 1)
		assert.Equal(t, 350, orders.inputs[0].Qty)
	})

	for _, body := range []string{
		`{"event_code":"SPRING","qty":0}`,
		`{"event_code":"SPRING","qty":-1}`,
		`{"qty":1}`,
		`{"event_code":"SPRING","qty":1,"buyer_display_name":"` + strings.Repeat("x", 101) + `"}`,
		`not json`,
	} {
		t.Run("bad request "+body, func(t *testing.T) {
			orders := &fakeOrderService{purchase: samplePurchase()}
			router := newTestRouter(&fakeEventService{}, orders, &fakeDrawService{}, &recordingBroadcaster{})

			w := doRequest(router, http.MethodPost, "/api/v1/orders", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, orders.inputs)
		})
	}
}

func TestOrderHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantText   string
	}{
		{
			name:       "event not live",
			err:        fmt.Errorf("%w (status: draft)", service.ErrEventNotLive),
			wantStatus: http.StatusBadRequest,
			wantText:   "event is not live (status: draft)",
		},
		{
			name:       "qty above configured limit",
			err:        fmt.Errorf("%w: qty must be a number between 1 and 200", service.ErrInvalidQuantity),
			wantStatus: http.StatusBadRequest,
			wantText:   "invalid ticket quantity: qty must be a number between 1 and 200",
		},
		{
			name:       "event not found",
			err:        fmt.Errorf("s.events.FindByCode -> %w", service.ErrEventNotFound),
			wantStatus: http.StatusNotFound,
			wantText:   "event not found",
		},
		{
			name:       "duplicate order",
			err:        fmt.Errorf("s.repo.Write -> %w", service.ErrDuplicateOrder),
			wantStatus: http.StatusConflict,
			wantText:   service.ErrDuplicateOrder.Error(),
		},
		{
			name:       "key reused",
			err:        service.ErrIdempotencyKeyReused,
			wantStatus: http.StatusConflict,
			wantText:   service.ErrIdempotencyKeyReused.Error(),
		},
		{
			name:       "allocator unavailable",
			err:        fmt.Errorf("s.repo.Write -> %w", service.ErrAllocatorUnavailable),
			wantStatus: http.StatusInternalServerError,
			wantText:   "internal server error",
		},
		{
			name:       "unexpected",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantText:   "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeEventService{}, &fakeOrderService{err: tt.err}, &fakeDrawService{}, &recordingBroadcaster{})

			w := doRequest(router, http.MethodPost, "/api/v1/orders", `{"event_code":"SPRING","qty":1}`)

			require.Equal(t, tt.wantStatus, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantText, body["error"])
		})
	}
}

func TestOrderHandler_HandleGetOrder(t *testing.T) {
	details := domain.OrderDetails{
		Order:                samplePurchase().Order,
		Event:                domain.Event{ID: "event-1", Code: "SPRING"},
		Tickets:              samplePurchase().Tickets,
		TicketCount:          2,
		WinningTicketNumbers: []int64{2},
	}

	t.Run("found", func(t *testing.T) {
		router := newTestRouter(&fakeEventService{}, &fakeOrderService{details: details}, &fakeDrawService{}, &recordingBroadcaster{})

		w := doRequest(router, http.MethodGet, "/api/v1/orders/"+testOrderID, "")

		require.Equal(t, http.StatusOK, w.Code)
		var body domain.OrderDetails
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 2, body.TicketCount)
		assert.Equal(t, []int64{2}, body.WinningTicketNumbers)
	})

	t.Run("malformed id", func(t *testing.T) {
		router := newTestRouter(&fakeEventService{}, &fakeOrderService{details: details}, &fakeDrawService{}, &recordingBroadcaster{})

		w := doRequest(router, http.MethodGet, "/api/v1/orders/not-a-uuid", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing", func(t *testing.T) {
		router := newTestRouter(&fakeEventService{}, &fakeOrderService{err: service.ErrOrderNotFound}, &fakeDrawService{}, &recordingBroadcaster{})

		w := doRequest(router, http.MethodGet, "/api/v1/orders/"+testOrderID+"/purchases", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOrderHandler_HandleGetOrderPurchases(t *testing.T) {
	purchases := []domain.Purchase{samplePurchase(), samplePurchase()}
	router := newTestRouter(&fakeEventService{}, &fakeOrderService{purchases: purchases}, &fakeDrawService{}, &recordingBroadcaster{})

	w := doRequest(router, http.MethodGet, "/api/v1/orders/"+testOrderID+"/purchases", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body []domain.Purchase
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body, 2)
}

func TestHandleHealthcheck(t *testing.T) {
	router := newTestRouter(&fakeEventService{}, &fakeOrderService{}, &fakeDrawService{}, &recordingBroadcaster{})

	w := doRequest(router, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
