package middleware

import (
	"net/http"
	"strconv"
	"time"

	"rosterhub/internal/api/dto/common"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for the rate limiter
type RateLimitConfig struct {
	// Requests per second
	RPS int
	// Burst size
	Burst int
}

// RateLimitMiddleware creates a rate limiting middleware with the given
// configuration.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(config.RPS), config.Burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, common.NewErrorResponse(
				common.ErrCodeTooManyRequests, "Rate limit exceeded. Please try again later.", nil))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.RPS))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))

		waitTime := limiter.Reserve().Delay()
		c.Header("X-RateLimit-Reset", time.Now().Add(waitTime).Format(time.RFC1123))

		c.Next()
	}
}
