package routes

import (
	"rosterhub/internal/api/handlers"
	"rosterhub/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Auth       *handlers.AuthHandler
	Membership *handlers.MembershipHandler
	Team       *handlers.TeamHandler
	Stats      *handlers.StatsHandler
	Health     *handlers.HealthHandler
}

// Middleware contains all the middleware
type Middleware struct {
	Auth       *middleware.AuthMiddleware
	Validation *middleware.ValidationMiddleware
}
