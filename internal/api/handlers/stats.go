package handlers

import (
	"errors"
	"net/http"

	"rosterhub/internal/api/constants"
	"rosterhub/internal/api/dto/common"
	"rosterhub/internal/membership"
	"rosterhub/internal/models"
	"rosterhub/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StatsHandler serves the diagnostic screen that is reachable in every
// lifecycle state: any authenticated user can inspect their own data here
// without being redirected.
type StatsHandler struct {
	db      *gorm.DB
	manager *membership.Manager
}

func NewStatsHandler(db *gorm.DB, manager *membership.Manager) *StatsHandler {
	return &StatsHandler{db: db, manager: manager}
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	userID := c.GetString(constants.ContextKeyUserID)

	var profile models.Profile
	if err := h.db.First(&profile, "id = ?", userID).Error; err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to load profile")
		return
	}

	snap := h.manager.StoreFor(userID).Snapshot()
	state := membership.DeriveState(snap, membership.RouteStats)

	payload := gin.H{
		"profile": gin.H{
			"id":             profile.ID,
			"display_name":   profile.DisplayName,
			"role":           profile.Role,
			"intended_role":  profile.IntendedRole,
			"status":         profile.Status,
			"position":       profile.Position,
			"jersey_number":  profile.JerseyNumber,
			"matches_played": profile.MatchesPlayed,
			"goals_scored":   profile.GoalsScored,
		},
		"lifecycle_state": string(state),
	}

	if profile.TeamID != nil {
		var team models.Team
		if err := h.db.First(&team, "id = ?", *profile.TeamID).Error; err == nil {
			payload["team"] = gin.H{
				"id":           team.ID,
				"name":         team.Name,
				"member_count": team.MemberCount,
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to load team")
			return
		}
	}

	utils.HandleSuccess(c, payload)
}
