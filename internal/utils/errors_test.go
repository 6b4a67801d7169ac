package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"rosterhub/internal/logging"
	"rosterhub/internal/membership"

	"github.com/gin-gonic/gin"
)

func membershipErrorStatus(t *testing.T, err error) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/teams", nil)

	HandleMembershipError(c, err)
	return w.Code
}

func TestHandleMembershipError(t *testing.T) {
	logging.Configure(&logging.Config{Level: "error", File: "test.log"})

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", membership.ErrUnauthenticated, http.StatusUnauthorized},
		{"permission denied", membership.ErrPermissionDenied, http.StatusForbidden},
		{"not found", membership.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("loading team: %w", membership.ErrNotFound), http.StatusNotFound},
		{"office conflict", &membership.ConflictError{Office: membership.RolePresident}, http.StatusConflict},
		{"anything else", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := membershipErrorStatus(t, tt.err); got != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, got)
			}
		})
	}
}
