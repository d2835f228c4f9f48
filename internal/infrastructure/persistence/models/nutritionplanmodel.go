package models

import (
	"time"

	"github.com/nutriplan/nutriplan/internal/shared/constants"
)

type NutritionPlanModel struct {
	ID            uint   `gorm:"primarykey"`
	UserID        uint   `gorm:"not null;index:idx_nutrition_plans_user"`
	Title         string `gorm:"not null;size:200"`
	Description   string `gorm:"type:text"`
	DailyCalories *int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (NutritionPlanModel) TableName() string {
	return constants.TableNutritionPlans
}
