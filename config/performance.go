package config

import (
	"time"

	"barbershop-backend/metrics"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const slowRequestThreshold = 200 * time.Millisecond

// PerformanceLogger logs every request with its latency, records it in the
// HTTP metrics, and warns about slow requests.
func PerformanceLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		metrics.ObserveHTTPRequest(c.Request.Method, c.FullPath(), status, latency)

		entry := logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency_ms": latency.Milliseconds(),
			"client_ip":  c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case latency > slowRequestThreshold:
			entry.Warn("slow request")
		case status >= 500:
			entry.Error("request failed")
		default:
			entry.Info("request")
		}
	}
}
