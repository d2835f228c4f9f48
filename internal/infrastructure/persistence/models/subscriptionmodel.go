package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nutriplan/nutriplan/internal/shared/constants"
)

// SubscriptionModel is the persistence model for subscriptions. Rows are
// never deleted.
type SubscriptionModel struct {
	ID               uint            `gorm:"primarykey"`
	UserID           uint            `gorm:"not null;index:idx_subscriptions_user_status,priority:1"`
	PlanID           uint            `gorm:"not null;index:idx_subscriptions_plan"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status           string          `gorm:"not null;size:20;index:idx_subscriptions_user_status,priority:2;index:idx_subscriptions_status"`
	SubscriptionDate time.Time       `gorm:"not null"`
	ApprovedByUserID *uint
	ApprovedDate     *time.Time
	CancelledAt      *time.Time
	Version          int `gorm:"not null;default:1"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	if s.SubscriptionDate.IsZero() {
		s.SubscriptionDate = time.Now()
	}
	return nil
}

// SubscriptionDetailRow is the scan target of the joined listing query.
type SubscriptionDetailRow struct {
	ID               uint
	UserID           uint
	PlanID           uint
	Amount           decimal.Decimal
	Status           string
	SubscriptionDate time.Time
	ApprovedByUserID *uint
	ApprovedDate     *time.Time
	CancelledAt      *time.Time
	UserName         string
	UserEmail        string
	PlanName         string
	PlanPrice        decimal.NullDecimal
}
