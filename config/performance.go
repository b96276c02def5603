package config

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestObserver receives the outcome of every request.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, latency time.Duration)
}

func PerformanceLogger(log *zap.Logger, slow time.Duration, observer RequestObserver) gin.HandlerFunc {
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		if observer != nil {
			observer.ObserveRequest(c.Request.Method, route, status, latency)
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
		}
		log.Debug("request", fields...)

		if latency > slow {
			log.Warn("slow request", fields...)
		}
	}
}
