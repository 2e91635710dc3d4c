package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/loddgo/loddgo-api/internal/metrics"
)

// RecordMetrics counts requests and observes their latency per route
// template, so /events/:code is one series regardless of the code.
func RecordMetrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(ctx.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
