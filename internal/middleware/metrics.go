package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kin-platform/kin-backend/internal/metrics"
)

// Metrics records request count, latency and in-flight gauge per route.
// The route template (e.g. /api/v1/users/:id) keeps label cardinality low.
func Metrics(registry *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		registry.HTTPRequestsInFlight.WithLabelValues(endpoint).Inc()
		defer registry.HTTPRequestsInFlight.WithLabelValues(endpoint).Dec()

		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()

		registry.HTTPRequestsTotal.WithLabelValues(
			endpoint,
			c.Request.Method,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		registry.HTTPRequestDuration.WithLabelValues(
			endpoint,
			c.Request.Method,
		).Observe(duration)
	}
}
