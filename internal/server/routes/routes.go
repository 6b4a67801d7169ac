package routes

import (
	"strings"

	"rosterhub/internal/api/middleware"
	"rosterhub/internal/config"
	"rosterhub/internal/logging"

	"github.com/gin-gonic/gin"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	logger := logging.GetLogger()

	v1 := router.Group("/api/v1")

	SetupHealthRoutes(router, h.Health)
	SetupAuthRoutes(v1, h.Auth, m)
	SetupMembershipRoutes(v1, h.Membership, m)
	SetupTeamRoutes(v1, h.Team, m)
	SetupStatsRoutes(v1, h.Stats, m)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, cfg *config.Config, logger *logging.Logger) {
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.Environment, cfg.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		RPS:   cfg.RateLimitRPS,
		Burst: cfg.RateLimitBurst,
	}))
	router.Use(handleTrailingSlash())
}

// handleTrailingSlash removes the need for strict trailing slash matching
func handleTrailingSlash() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path != "/" && strings.HasSuffix(path, "/") {
			c.Request.URL.Path = strings.TrimSuffix(path, "/")
		}
		c.Next()
	}
}
