package mappers

import (
	"github.com/nutriplan/nutriplan/internal/domain/nutritionplan"
	"github.com/nutriplan/nutriplan/internal/infrastructure/persistence/models"
)

func NutritionPlanToEntity(model *models.NutritionPlanModel) *nutritionplan.NutritionPlan {
	if model == nil {
		return nil
	}
	return nutritionplan.ReconstructNutritionPlan(
		model.ID,
		model.UserID,
		model.Title,
		model.Description,
		model.DailyCalories,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func NutritionPlanToModel(entity *nutritionplan.NutritionPlan) *models.NutritionPlanModel {
	return &models.NutritionPlanModel{
		ID:            entity.ID(),
		UserID:        entity.UserID(),
		Title:         entity.Title(),
		Description:   entity.Description(),
		DailyCalories: entity.DailyCalories(),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}
}
