package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetRealIP extracts the client IP from various headers, respecting reverse
// proxies, and is used consistently across the application.
func GetRealIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}

	// X-Forwarded-For can be a comma-separated list; the leftmost entry is
	// the original client.
	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		ips := strings.Split(forwardedFor, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	return c.ClientIP()
}
