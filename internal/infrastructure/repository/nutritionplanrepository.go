package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nutriplan/nutriplan/internal/domain/nutritionplan"
	"github.com/nutriplan/nutriplan/internal/infrastructure/persistence/mappers"
	"github.com/nutriplan/nutriplan/internal/infrastructure/persistence/models"
	"github.com/nutriplan/nutriplan/internal/shared/db"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

type NutritionPlanRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewNutritionPlanRepository(db *gorm.DB, logger logger.Interface) nutritionplan.Repository {
	return &NutritionPlanRepositoryImpl{db: db, logger: logger}
}

func (r *NutritionPlanRepositoryImpl) Create(ctx context.Context, entity *nutritionplan.NutritionPlan) error {
	model := mappers.NutritionPlanToModel(entity)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create nutrition plan", "user_id", model.UserID, "error", err)
		return fmt.Errorf("failed to create nutrition plan: %w", err)
	}
	return entity.SetID(model.ID)
}

func (r *NutritionPlanRepositoryImpl) GetByID(ctx context.Context, id uint) (*nutritionplan.NutritionPlan, error) {
	var model models.NutritionPlanModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get nutrition plan", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get nutrition plan: %w", err)
	}
	return mappers.NutritionPlanToEntity(&model), nil
}

func (r *NutritionPlanRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]*nutritionplan.NutritionPlan, error) {
	var list []*models.NutritionPlanModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list nutrition plans", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list nutrition plans: %w", err)
	}

	out := make([]*nutritionplan.NutritionPlan, 0, len(list))
	for _, m := range list {
		out = append(out, mappers.NutritionPlanToEntity(m))
	}
	return out, nil
}

func (r *NutritionPlanRepositoryImpl) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.NutritionPlanModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count nutrition plans", "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to count nutrition plans: %w", err)
	}
	return count, nil
}

func (r *NutritionPlanRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.NutritionPlanModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete nutrition plan", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete nutrition plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nutritionplan.ErrNutritionPlanNotFound
	}
	return nil
}
