package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nutriplan/nutriplan/internal/shared/authorization"
	"github.com/nutriplan/nutriplan/internal/shared/constants"
	"github.com/nutriplan/nutriplan/internal/shared/errors"
)

// caller is the identity the auth middleware stored on the request.
type caller struct {
	UserID uint
	Role   authorization.UserRole
}

func (c caller) IsAdmin() bool {
	return c.Role.IsAdmin()
}

func currentCaller(c *gin.Context) (caller, error) {
	userID := c.GetUint(constants.ContextKeyUserID)
	if userID == 0 {
		return caller{}, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized)
	}
	return caller{UserID: userID, Role: authorization.CurrentRole(c)}, nil
}
