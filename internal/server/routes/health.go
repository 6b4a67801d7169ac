package routes

import (
	"rosterhub/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupHealthRoutes configures the health check route
func SetupHealthRoutes(router *gin.Engine, health *handlers.HealthHandler) {
	router.GET("/api/health", health.Check)
}
