package authorization

import (
	"github.com/gin-gonic/gin"

	"github.com/nutriplan/nutriplan/internal/shared/constants"
)

// CurrentRole returns the caller role stored by the auth middleware.
func CurrentRole(c *gin.Context) UserRole {
	return ParseUserRole(c.GetString(constants.ContextKeyUserRole))
}
