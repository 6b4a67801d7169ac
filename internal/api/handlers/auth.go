package handlers

import (
	"errors"
	"net/http"

	"rosterhub/internal/api/constants"
	"rosterhub/internal/api/dto/common"
	authdto "rosterhub/internal/api/dto/v1/auth"
	"rosterhub/internal/api/mapper"
	"rosterhub/internal/config/firebase"
	"rosterhub/internal/membership"
	"rosterhub/internal/models"
	"rosterhub/internal/repository"
	"rosterhub/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler handles login/register/logout pass-throughs. Credentials live
// in the authorization backend; this layer only exchanges a verified token
// for a profile row and feeds the auth-event hub.
type AuthHandler struct {
	db      *gorm.DB
	hub     *repository.AuthHub
	manager *membership.Manager
}

func NewAuthHandler(db *gorm.DB, hub *repository.AuthHub, manager *membership.Manager) *AuthHandler {
	return &AuthHandler{db: db, hub: hub, manager: manager}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, "Invalid request body", nil))
		return
	}

	uid, err := firebase.VerifyToken(c.Request.Context(), req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Invalid credentials", nil))
		return
	}

	var profile models.Profile
	if err := h.db.Where("firebase_uid = ?", uid).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "No profile for this account, please register first", nil))
			return
		}
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to load profile")
		return
	}

	h.hub.Publish(profile.ID, membership.EventSignedIn, &membership.Session{UserID: profile.ID, Email: profile.Email})

	utils.HandleSuccess(c, mapper.ToProfileResponse(&profile))
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, "Invalid request body", nil))
		return
	}

	uid, err := firebase.VerifyToken(c.Request.Context(), req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Invalid credentials", nil))
		return
	}

	var existing models.Profile
	if err := h.db.Where("firebase_uid = ?", uid).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, common.NewErrorResponse(common.ErrCodeConflict, "Account already registered", nil))
		return
	}

	email := ""
	if record, err := firebase.GetUserByUID(c.Request.Context(), uid); err == nil {
		email = record.Email
	}

	// A fresh profile starts as an unprivileged player with no requested
	// role, no team and the no-team approval baseline.
	profile := models.Profile{
		FirebaseUID: uid,
		Email:       email,
		DisplayName: req.DisplayName,
		Role:        string(membership.RolePlayer),
		Status:      string(membership.StatusApproved),
	}
	if err := h.db.Create(&profile).Error; err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to create profile")
		return
	}

	h.hub.Publish(profile.ID, membership.EventSignedIn, &membership.Session{UserID: profile.ID, Email: profile.Email})

	utils.HandleCreated(c, mapper.ToProfileResponse(&profile))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetString(constants.ContextKeyUserID)

	h.hub.Publish(userID, membership.EventSignedOut, nil)
	h.manager.Release(userID)

	utils.HandleMessage(c, "Logged out successfully")
}
