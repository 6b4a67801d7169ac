package middleware

import (
	"bytes"
	"io"
	"net/http"

	"rosterhub/internal/api/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidationMiddleware handles request validation
type ValidationMiddleware struct {
	validate *validator.Validate
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware() *ValidationMiddleware {
	validate := validator.New()
	validation.RegisterValidators(validate)

	// The custom tags also appear in binding tags, so gin's own engine
	// needs them registered as well.
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(engine)
	}

	return &ValidationMiddleware{validate: validate}
}

// validateBody binds the body into target, rejects the request on failure
// and restores the body for the handler.
func (m *ValidationMiddleware) validateBody(c *gin.Context, target interface{}) bool {
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error reading request body"})
		c.Abort()
		return false
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid request body",
			"errors": validation.FormatValidationError(err),
		})
		c.Abort()
		return false
	}

	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	return true
}

// ValidateSetRoleRequest validates the intended-role payload
func (m *ValidationMiddleware) ValidateSetRoleRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Role string `json:"role" binding:"required,clubrole"`
		}
		if !m.validateBody(c, &body) {
			return
		}
		c.Next()
	}
}

// ValidateCreateTeamRequest validates the team creation payload
func (m *ValidationMiddleware) ValidateCreateTeamRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Name        string `json:"name" binding:"required,teamname"`
			Description string `json:"description" binding:"omitempty,max=1000"`
		}
		if !m.validateBody(c, &body) {
			return
		}
		c.Next()
	}
}

// ValidateUpdateRoleRequest validates the member role change payload
func (m *ValidationMiddleware) ValidateUpdateRoleRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			CurrentRole string `json:"current_role" binding:"required,clubrole"`
			NewRole     string `json:"new_role" binding:"required,clubrole"`
		}
		if !m.validateBody(c, &body) {
			return
		}
		c.Next()
	}
}
