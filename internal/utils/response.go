package utils

import (
	"net/http"

	"rosterhub/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// HandleSuccess wraps data in the standard envelope with a 200.
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(data))
}

// HandleCreated wraps data in the standard envelope with a 201.
func HandleCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, common.NewSuccessResponse(data))
}

// HandleMessage sends an envelope carrying only a message, for mutations
// whose result the caller already knows.
func HandleMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, common.NewMessageResponse(message))
}
