package utils

import (
	"errors"
	"net/http"

	"rosterhub/internal/api/dto/common"
	"rosterhub/internal/logging"
	"rosterhub/internal/membership"

	"github.com/gin-gonic/gin"
)

// HandleAPIError is the single place that maps errors onto HTTP responses.
// Sensitive error details are only exposed outside release mode.
func HandleAPIError(c *gin.Context, err error, defaultStatus int, defaultCode common.ErrorCode, defaultMessage string) {
	logger := logging.GetLogger()
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		defaultStatus,
		defaultMessage,
		err,
	)

	var errorDetails interface{}
	if gin.Mode() != gin.ReleaseMode {
		errorDetails = err.Error()
	}

	c.JSON(defaultStatus, common.NewErrorResponse(defaultCode, defaultMessage, errorDetails))
}

// HandleMembershipError maps the lifecycle error taxonomy onto status codes.
func HandleMembershipError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, membership.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse(common.ErrCodeUnauthorized, "Authentication required", nil))
	case errors.Is(err, membership.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, common.NewErrorResponse(common.ErrCodeForbidden, "You do not have permission for this action", nil))
	case errors.Is(err, membership.ErrNotFound):
		c.JSON(http.StatusNotFound, common.NewErrorResponse(common.ErrCodeNotFound, "Resource not found", nil))
	case membership.IsConflict(err):
		c.JSON(http.StatusConflict, common.NewErrorResponse(common.ErrCodeConflict, err.Error(), nil))
	default:
		HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Request failed")
	}
}
