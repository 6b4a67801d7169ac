package routes

import (
	"rosterhub/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupStatsRoutes configures the diagnostic stats route, reachable from any
// lifecycle state for a signed-in user.
func SetupStatsRoutes(rg *gin.RouterGroup, stats *handlers.StatsHandler, m *Middleware) {
	group := rg.Group("/stats")
	group.Use(m.Auth.RequireAuth())
	{
		group.GET("", stats.GetStats)
	}
}
