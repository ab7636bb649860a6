package middleware

import (
	"strconv"
	"time"

	"github.com/TheCyberMayor/NC4A-NATDB/internal/metrics"

	"github.com/gin-gonic/gin"
)

// RequestMetrics records a counter and latency histogram per route
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched" // avoid a label per unknown path
		}
		m.RequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
