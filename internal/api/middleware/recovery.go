package middleware

import (
	"net/http"
	"runtime/debug"

	"rosterhub/internal/api/dto/common"
	"rosterhub/internal/logging"

	"github.com/gin-gonic/gin"
)

// Recovery turns panics into 500 responses and logs the stack trace.
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered: %v | %s %s | %s\n%s",
					err,
					c.Request.Method,
					c.Request.URL.Path,
					c.GetString("RequestID"),
					string(debug.Stack()),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					common.NewErrorResponse(common.ErrCodeInternalServer, "Internal server error", nil))
			}
		}()

		c.Next()
	}
}
