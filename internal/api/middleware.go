package api

import (
	"context"
	"strconv"
	"time"

	"npdecide/domain/core"
	"npdecide/internal"

	"github.com/gin-gonic/gin"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
)

// HTTPMetrics records per-request metrics
type HTTPMetrics interface {
	ObserveHTTP(method, path, status string, seconds float64)
}

// RequestID accepts a caller-supplied UUID in X-Request-ID or issues a new one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := core.ParseRequestID(c.GetHeader(requestIDHeader))
		if err != nil {
			id = core.NewRequestID()
		}
		c.Set(requestIDKey, id.String())
		c.Header(requestIDHeader, id.String())
		c.Next()
	}
}

func requestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Timeout bounds the request context
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AccessLog logs one line per request and feeds the metrics sink
func AccessLog(logger *internal.Logger, sink HTTPMetrics) gin.HandlerFunc {
	logger = logger.WithComponent("HTTP")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		elapsed := time.Since(start)
		status := c.Writer.Status()
		if sink != nil {
			sink.ObserveHTTP(c.Request.Method, path, strconv.Itoa(status), elapsed.Seconds())
		}
		logger.Info("%s %s %d %.2fms request_id=%s", c.Request.Method, path, status, float64(elapsed.Nanoseconds())/1e6, requestIDFrom(c))
	}
}
