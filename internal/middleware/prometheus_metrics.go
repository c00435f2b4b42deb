package middleware

import (
	"strconv"
	"time"

	"github.com/b2better/recommender/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware collects HTTP metrics for Prometheus
func MetricsMiddleware() gin.HandlerFunc {
	m := metrics.Get()

	return func(c *gin.Context) {
		method := c.Request.Method
		// Use the route template, not the raw path, to keep label
		// cardinality bounded (retailer IDs would explode it)
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		startTime := time.Now()
		c.Next()
		duration := time.Since(startTime).Seconds()

		// Numeric status code as string (e.g. "200", "500") so Grafana
		// queries like status=~"5.." match 5xx errors
		statusStr := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path, statusStr).Observe(duration)
	}
}
