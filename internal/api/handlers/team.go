package handlers

import (
	"net/http"

	"rosterhub/internal/api/constants"
	"rosterhub/internal/api/dto/common"
	teamdto "rosterhub/internal/api/dto/v1/team"
	"rosterhub/internal/api/mapper"
	"rosterhub/internal/membership"
	"rosterhub/internal/models"
	"rosterhub/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TeamHandler exposes team creation, discovery and the membership approval
// flow. All lifecycle writes go through the caller's store so its invariants
// hold; reads go straight to the directory.
type TeamHandler struct {
	db      *gorm.DB
	manager *membership.Manager
	dir     membership.DirectoryPort
}

func NewTeamHandler(db *gorm.DB, manager *membership.Manager, dir membership.DirectoryPort) *TeamHandler {
	return &TeamHandler{db: db, manager: manager, dir: dir}
}

func (h *TeamHandler) store(c *gin.Context) *membership.Store {
	return h.manager.StoreFor(c.GetString(constants.ContextKeyUserID))
}

// ListTeams returns teams for the onboarding team-selection step.
func (h *TeamHandler) ListTeams(c *gin.Context) {
	var teams []models.Team
	query := h.db.Order("name ASC").Limit(100)
	if search := c.Query("q"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if err := query.Find(&teams).Error; err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to list teams")
		return
	}

	out := make([]*teamdto.Response, 0, len(teams))
	for i := range teams {
		out = append(out, &teamdto.Response{
			ID:              teams[i].ID,
			Name:            teams[i].Name,
			Description:     teams[i].Description,
			HasFirstManager: teams[i].HasFirstManager,
			MemberCount:     teams[i].MemberCount,
		})
	}
	utils.HandleSuccess(c, out)
}

// GetTeam returns one team.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	rec, err := h.dir.TeamByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleMembershipError(c, err)
		return
	}
	utils.HandleSuccess(c, mapper.ToTeamResponse(rec))
}

// ListMembers returns the roster, pending applicants included.
func (h *TeamHandler) ListMembers(c *gin.Context) {
	var profiles []models.Profile
	err := h.db.Where("team_id = ?", c.Param("id")).
		Order("status ASC, display_name ASC").
		Find(&profiles).Error
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to list members")
		return
	}
	utils.HandleSuccess(c, mapper.ToMemberResponses(profiles))
}

// CreateTeam founds a team with the caller as first manager.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req teamdto.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, "Invalid request body", nil))
		return
	}

	teamID, err := h.store(c).CreateTeam(c.Request.Context(), membership.TeamDetails{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		utils.HandleMembershipError(c, err)
		return
	}
	utils.HandleCreated(c, teamdto.CreateResponse{TeamID: teamID})
}

// JoinTeam requests membership of an existing team.
func (h *TeamHandler) JoinTeam(c *gin.Context) {
	store := h.store(c)
	if err := store.JoinTeam(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleMembershipError(c, err)
		return
	}
	utils.HandleSuccess(c, mapper.ToSnapshotResponse(store.Snapshot()))
}

// ApproveMember grants a pending member their requested role.
func (h *TeamHandler) ApproveMember(c *gin.Context) {
	if err := h.store(c).ApproveMember(c.Request.Context(), c.Param("memberId")); err != nil {
		utils.HandleMembershipError(c, err)
		return
	}
	utils.HandleMessage(c, "Member approved")
}

// RejectMember turns a pending member away.
func (h *TeamHandler) RejectMember(c *gin.Context) {
	if err := h.store(c).RejectMember(c.Request.Context(), c.Param("memberId")); err != nil {
		utils.HandleMembershipError(c, err)
		return
	}
	utils.HandleMessage(c, "Member rejected")
}

// UpdateMemberRole changes another member's granted role. The store reports
// failures through its error slot rather than an error return, so a false
// result is translated back into an HTTP error here.
func (h *TeamHandler) UpdateMemberRole(c *gin.Context) {
	var req teamdto.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, "Invalid request body", nil))
		return
	}

	store := h.store(c)
	ok := store.UpdateMemberRole(
		c.Request.Context(),
		c.Param("memberId"),
		membership.Role(req.CurrentRole),
		membership.Role(req.NewRole),
	)
	if !ok {
		snap := store.Snapshot()
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeBadRequest, snap.Err, nil))
		return
	}
	utils.HandleMessage(c, "Member role updated")
}
