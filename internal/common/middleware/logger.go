package middleware

import (
	"time"

	"tg-checkin-backend/internal/common/logger"

	"github.com/gin-gonic/gin"
)

// probe paths are polled every few seconds and would drown the log
var quietPaths = map[string]struct{}{
	"/health": {},
	"/live":   {},
	"/ready":  {},
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if _, quiet := quietPaths[path]; quiet && c.Writer.Status() < 400 {
			return
		}
		if raw != "" {
			path = path + "?" + raw
		}

		logger.Info().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Int("body_size", c.Writer.Size()).
			Msg("Request processed")
	}
}
