package routes

import (
	"rosterhub/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes configures the authentication pass-through routes
func SetupAuthRoutes(rg *gin.RouterGroup, auth *handlers.AuthHandler, m *Middleware) {
	group := rg.Group("/auth")
	{
		group.POST("/login", auth.Login)
		group.POST("/register", auth.Register)
		group.POST("/logout", m.Auth.RequireAuth(), auth.Logout)
	}
}
