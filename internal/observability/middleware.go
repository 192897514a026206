package observability

import (
	"time"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware returns a Gin middleware that records request
// counts and latencies per route
func MetricsMiddleware(mp *MetricsProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			// unmatched routes collapse into one series to keep
			// cardinality bounded
			route = "unmatched"
		}

		mp.RecordHTTPRequest(
			c.Request.Context(),
			c.Request.Method,
			route,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}
