package api

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/UnknownOlympus/nearby/internal/metrics"
	"github.com/gin-gonic/gin"
)

// requestLogger logs method, path, status, response size and duration of every request.
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.InfoContext(c.Request.Context(), "HTTP request served",
			"method", c.Request.Method,
			"path", c.Request.URL.RequestURI(),
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"dur", time.Since(start),
		)
	}
}

// instrument records request counts and latency per matched route.
func instrument(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPSeconds.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
