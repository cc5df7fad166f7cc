package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/servicedesk/backend/internal/logger"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs every HTTP request with latency and the request id
// attached by RequestID.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    latency.String(),
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString(RequestIDKey),
		}
		if userID, exists := c.Get("user_id"); exists {
			fields["user_id"] = userID
		}

		logger.GetLogger().WithFields(fields).Info("request completed")
	}
}
