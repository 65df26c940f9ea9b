package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hearthside/backend/internal/metrics"
)

// Metrics records request counts and latency for Prometheus. Routes are
// labelled by their pattern (e.g. /api/v1/posts/update/:id), not the raw
// path, to keep label cardinality bounded.
func Metrics() gin.HandlerFunc {
	m := metrics.Get()

	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(startTime).Seconds()

		m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration)
	}
}
