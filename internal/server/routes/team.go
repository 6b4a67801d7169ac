package routes

import (
	"rosterhub/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupTeamRoutes configures team creation, joining and member administration routes
func SetupTeamRoutes(rg *gin.RouterGroup, team *handlers.TeamHandler, m *Middleware) {
	group := rg.Group("/teams")
	group.Use(m.Auth.RequireAuth())
	{
		group.GET("", team.ListTeams)
		group.GET("/:id", team.GetTeam)
		group.POST("", m.Validation.ValidateCreateTeamRequest(), team.CreateTeam)
		group.POST("/:id/join", team.JoinTeam)

		// Member administration requires an officer role.
		members := group.Group("/:id/members")
		{
			members.GET("", team.ListMembers)
			members.POST("/:memberId/approve", m.Auth.RequireOfficer(), team.ApproveMember)
			members.POST("/:memberId/reject", m.Auth.RequireOfficer(), team.RejectMember)
			members.PUT("/:memberId/role", m.Auth.RequireOfficer(), m.Validation.ValidateUpdateRoleRequest(), team.UpdateMemberRole)
		}
	}
}
