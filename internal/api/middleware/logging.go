package middleware

import (
	"time"

	"rosterhub/internal/logging"
	"rosterhub/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs request information through the application logger.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := utils.GetRealIP(c)

		if status >= 500 {
			logger.Error("%3d | %13v | %15s | %-7s %s", status, latency, clientIP, method, path)
			return
		}
		logger.Debug("%3d | %13v | %15s | %-7s %s", status, latency, clientIP, method, path)
	}
}
