package dto

import (
	"time"

	"github.com/nutriplan/nutriplan/internal/domain/nutritionplan"
)

type NutritionPlanDTO struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	DailyCalories *int      `json:"daily_calories,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToNutritionPlanDTO(n *nutritionplan.NutritionPlan) *NutritionPlanDTO {
	if n == nil {
		return nil
	}
	return &NutritionPlanDTO{
		ID:            n.ID(),
		UserID:        n.UserID(),
		Title:         n.Title(),
		Description:   n.Description(),
		DailyCalories: n.DailyCalories(),
		CreatedAt:     n.CreatedAt(),
		UpdatedAt:     n.UpdatedAt(),
	}
}

func ToNutritionPlanDTOs(plans []*nutritionplan.NutritionPlan) []*NutritionPlanDTO {
	out := make([]*NutritionPlanDTO, 0, len(plans))
	for _, n := range plans {
		out = append(out, ToNutritionPlanDTO(n))
	}
	return out
}
