package handlers

import (
	"net/http"

	"rosterhub/internal/api/constants"
	"rosterhub/internal/api/dto/common"
	membershipdto "rosterhub/internal/api/dto/v1/membership"
	"rosterhub/internal/api/mapper"
	"rosterhub/internal/membership"
	"rosterhub/internal/utils"

	"github.com/gin-gonic/gin"
)

// MembershipHandler exposes the lifecycle store and the smart-routing
// decision to clients.
type MembershipHandler struct {
	manager *membership.Manager
}

func NewMembershipHandler(manager *membership.Manager) *MembershipHandler {
	return &MembershipHandler{manager: manager}
}

func (h *MembershipHandler) store(c *gin.Context) *membership.Store {
	return h.manager.StoreFor(c.GetString(constants.ContextKeyUserID))
}

// GetMembership returns the caller's lifecycle snapshot.
func (h *MembershipHandler) GetMembership(c *gin.Context) {
	utils.HandleSuccess(c, mapper.ToSnapshotResponse(h.store(c).Snapshot()))
}

// SetIntendedRole records which role the caller wants. It never grants it.
func (h *MembershipHandler) SetIntendedRole(c *gin.Context) {
	var req membershipdto.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, "Invalid request body", nil))
		return
	}

	store := h.store(c)
	if err := store.SetIntendedRole(c.Request.Context(), membership.Role(req.Role)); err != nil {
		utils.HandleMembershipError(c, err)
		return
	}
	utils.HandleSuccess(c, mapper.ToSnapshotResponse(store.Snapshot()))
}

// CompleteSetup marks the onboarding wizard as finished.
func (h *MembershipHandler) CompleteSetup(c *gin.Context) {
	store := h.store(c)
	if err := store.CompleteSetup(c.Request.Context()); err != nil {
		utils.HandleMembershipError(c, err)
		return
	}
	utils.HandleSuccess(c, mapper.ToSnapshotResponse(store.Snapshot()))
}

// GetRoute computes the single correct screen for the caller's lifecycle
// stage. The client sends its current path so the privacy and profile
// onboarding steps can be told apart.
func (h *MembershipHandler) GetRoute(c *gin.Context) {
	current := membership.Route(c.Query("current"))
	state := membership.DeriveState(h.store(c).Snapshot(), current)
	utils.HandleSuccess(c, mapper.ToRouteResponse(state))
}

// ClearError empties the store's error slot.
func (h *MembershipHandler) ClearError(c *gin.Context) {
	store := h.store(c)
	store.ClearError()
	utils.HandleSuccess(c, mapper.ToSnapshotResponse(store.Snapshot()))
}
