package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nutriplan/nutriplan/internal/shared/constants"
)

// PlanModel is the persistence model for catalog plans.
type PlanModel struct {
	ID                 uint   `gorm:"primarykey"`
	Name               string `gorm:"uniqueIndex:uk_plans_name;not null;size:100"`
	Description        string `gorm:"type:text"`
	Features           datatypes.JSON
	Price              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsActive           bool            `gorm:"not null;default:true;index:idx_plans_active"`
	NutritionPlanLimit *int
	Version            int `gorm:"not null;default:1"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (PlanModel) TableName() string {
	return constants.TablePlans
}

func (p *PlanModel) BeforeCreate(tx *gorm.DB) error {
	if p.Version == 0 {
		p.Version = 1
	}
	return nil
}
