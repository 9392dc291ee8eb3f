package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestMetricsMiddleware records request counts, latency and in-flight
// requests. Paths are labelled by route template to keep cardinality bounded.
func RequestMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		activeHTTPRequests.Add(1)
		totalHTTPRequests.Add(1)
		httpInFlight.Inc()
		start := time.Now()
		defer func() {
			activeHTTPRequests.Add(-1)
			httpInFlight.Dec()
		}()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		httpRequests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

func getHTTPStats() (active int64, total uint64) {
	return activeHTTPRequests.Load(), totalHTTPRequests.Load()
}
