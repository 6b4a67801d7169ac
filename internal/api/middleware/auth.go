package middleware

import (
	"net/http"
	"strings"
	"time"

	"rosterhub/internal/api/constants"
	"rosterhub/internal/api/dto/common"
	"rosterhub/internal/config/firebase"
	"rosterhub/internal/membership"
	"rosterhub/internal/models"
	"rosterhub/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware resolves the caller's identity through the authorization
// backend and attaches the matching profile to the request context.
type AuthMiddleware struct {
	db *gorm.DB
}

func NewAuthMiddleware(db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{db: db}
}

// RequireAuth verifies the session cookie or Bearer token and loads the
// caller's profile.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var uid string

		// Session cookie first
		if sessionCookie, err := c.Cookie(constants.CookieSession); err == nil && sessionCookie != "" {
			if token, err := firebase.GetAuthClient().VerifySessionCookieAndCheckRevoked(c.Request.Context(), sessionCookie); err == nil {
				uid = token.UID
			}
			// Fall through to the Authorization header when invalid
		}

		if uid == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Authentication required", nil))
				c.Abort()
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Invalid authorization header format", nil))
				c.Abort()
				return
			}

			verified, err := firebase.VerifyToken(c.Request.Context(), parts[1])
			if err != nil {
				c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Invalid token", nil))
				c.Abort()
				return
			}
			uid = verified
		}

		var profile models.Profile
		if err := m.db.Where("firebase_uid = ?", uid).First(&profile).Error; err != nil {
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Profile not found, please log in again", nil))
			c.Abort()
			return
		}

		profile.LastLogin = time.Now()
		profile.LastLoginIP = utils.GetRealIP(c)
		m.db.Model(&profile).Select("last_login", "last_login_ip").Updates(&profile)

		c.Set(constants.ContextKeyProfile, profile)
		c.Set(constants.ContextKeyUserID, profile.ID)
		c.Next()
	}
}

// RequireOfficer gates endpoints that only a granted officer may call.
func (m *AuthMiddleware) RequireOfficer() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(constants.ContextKeyProfile)
		if !exists {
			c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "User not found in context", nil))
			c.Abort()
			return
		}

		profile, ok := value.(models.Profile)
		if !ok {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(common.ErrCodeInternalServer, "Invalid profile type in context", nil))
			c.Abort()
			return
		}

		if !membership.Role(profile.Role).IsOfficer() {
			c.JSON(http.StatusForbidden, common.NewErrorResponse(common.ErrCodeForbidden, "Officer access required", nil))
			c.Abort()
			return
		}

		c.Next()
	}
}
