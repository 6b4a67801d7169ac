package routes

import (
	"rosterhub/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupMembershipRoutes configures the lifecycle snapshot and routing routes
func SetupMembershipRoutes(rg *gin.RouterGroup, membership *handlers.MembershipHandler, m *Middleware) {
	group := rg.Group("/membership")
	group.Use(m.Auth.RequireAuth())
	{
		group.GET("", membership.GetMembership)
		group.POST("/role", m.Validation.ValidateSetRoleRequest(), membership.SetIntendedRole)
		group.POST("/setup-complete", membership.CompleteSetup)
		group.GET("/route", membership.GetRoute)
		group.DELETE("/error", membership.ClearError)
	}
}
