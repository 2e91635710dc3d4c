package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	OrdersCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "loddgo_orders_created_total",
			Help: "Total number of orders written with their tickets",
		},
	)

	TicketsIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "loddgo_tickets_issued_total",
			Help: "Total number of ticket numbers issued",
		},
	)

	OrderReplaysTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "loddgo_order_replays_total",
			Help: "Total number of purchases answered from an earlier idempotency key",
		},
	)

	PurchaseFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loddgo_purchase_failures_total",
			Help: "Total number of failed purchases by reason",
		},
		[]string{"reason"},
	)

	DrawsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loddgo_draws_total",
			Help: "Total number of recorded draws by method",
		},
		[]string{"method"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loddgo_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loddgo_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

var registerOnce sync.Once

// Register registers all Prometheus metrics with the default registry. It is
// safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(OrdersCreatedTotal)
		prometheus.MustRegister(TicketsIssuedTotal)
		prometheus.MustRegister(OrderReplaysTotal)
		prometheus.MustRegister(PurchaseFailuresTotal)
		prometheus.MustRegister(DrawsTotal)
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
	})
}
