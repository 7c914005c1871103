package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tg-checkin-backend/internal/common/errors"
	"tg-checkin-backend/internal/common/logger"
)

// ErrorHandler recovers panics and answers 500.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := GetRequestID(c)

		logger.Error().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		appErr := errors.New(errors.ErrCodeInternal, errors.MsgSomethingWrong).
			WithRequestID(requestID).
			WithDetail("panic", fmt.Sprintf("%v", recovered))

		RespondError(c, appErr)
	})
}

// RequestID propagates or assigns X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// MessageResponse is the body of every error and mutation reply.
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondError maps err to a status and writes {message}.
func RespondError(c *gin.Context, err error) {
	status := errors.StatusCode(err)
	logError(c, err, status)
	c.AbortWithStatusJSON(status, MessageResponse{Message: errors.PublicMessage(err)})
}

func logError(c *gin.Context, err error, status int) {
	event := logger.Info()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	} else if status == http.StatusUnauthorized || status == http.StatusForbidden {
		event = logger.Warn()
	}

	event = event.
		Str("request_id", GetRequestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Err(err)

	if appErr, ok := errors.AsAppError(err); ok {
		event = event.Str("error_code", string(appErr.Code))
		if len(appErr.Details) > 0 {
			event = event.Interface("details", appErr.Details)
		}
	}

	event.Msg("Request failed")
}

// GetRequestID reads the id set by RequestID.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return "unknown"
}
