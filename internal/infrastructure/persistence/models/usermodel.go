package models

import (
	"time"

	"github.com/nutriplan/nutriplan/internal/shared/constants"
)

// UserModel mirrors the account table written by the authentication service.
// Only the columns read here are mapped.
type UserModel struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"not null;size:100"`
	Email     string `gorm:"uniqueIndex:uk_users_email;not null;size:255"`
	Role      string `gorm:"not null;size:20;default:user"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
