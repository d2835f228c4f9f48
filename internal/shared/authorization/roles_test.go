package authorization

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/nutriplan/nutriplan/internal/shared/constants"
)

func TestParseUserRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseUserRole("admin"))
	assert.Equal(t, RoleUser, ParseUserRole("user"))
	assert.Equal(t, RoleUser, ParseUserRole("root"))
}

func TestCurrentRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, tc := range []struct {
		stored string
		want   UserRole
	}{
		{"admin", RoleAdmin},
		{"user", RoleUser},
		{"", RoleUser},
	} {
		t.Run(tc.stored, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Set(constants.ContextKeyUserRole, tc.stored)
			assert.Equal(t, tc.want, CurrentRole(c))
		})
	}
}
