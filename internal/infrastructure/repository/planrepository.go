package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nutriplan/nutriplan/internal/domain/plan"
	"github.com/nutriplan/nutriplan/internal/domain/shared"
	"github.com/nutriplan/nutriplan/internal/infrastructure/persistence/mappers"
	"github.com/nutriplan/nutriplan/internal/infrastructure/persistence/models"
	"github.com/nutriplan/nutriplan/internal/shared/db"
	apperrors "github.com/nutriplan/nutriplan/internal/shared/errors"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

type PlanRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PlanMapper
	logger logger.Interface
}

func NewPlanRepository(db *gorm.DB, logger logger.Interface) plan.Repository {
	return &PlanRepositoryImpl{
		db:     db,
		mapper: mappers.NewPlanMapper(),
		logger: logger,
	}
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, entity *plan.Plan) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map plan entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return plan.ErrDuplicateName
		}
		r.logger.Errorw("failed to create plan", "name", model.Name, "error", err)
		return fmt.Errorf("failed to create plan: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set plan ID: %w", err)
	}

	r.logger.Infow("plan created", "plan_id", model.ID, "name", model.Name)
	return nil
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, id uint) (*plan.Plan, error) {
	var model models.PlanModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by ID", "plan_id", id, "error", err)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// GetByName matches the stored (already normalised) name exactly.
func (r *PlanRepositoryImpl) GetByName(ctx context.Context, name string) (*plan.Plan, error) {
	var model models.PlanModel
	if err := db.GetTxFromContext(ctx, r.db).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by name", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get plan by name: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *PlanRepositoryImpl) Update(ctx context.Context, entity *plan.Plan) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map plan entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.PlanModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"name":                 model.Name,
			"description":          model.Description,
			"features":             model.Features,
			"price":                model.Price,
			"is_active":            model.IsActive,
			"nutrition_plan_limit": model.NutritionPlanLimit,
			"version":              model.Version + 1,
			"updated_at":           model.UpdatedAt,
		})
	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return plan.ErrDuplicateName
		}
		r.logger.Errorw("failed to update plan", "plan_id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrentModification
	}

	entity.IncrementVersion()
	r.logger.Infow("plan updated", "plan_id", model.ID, "version", entity.Version())
	return nil
}

// Delete removes the row. Subscriptions referencing the plan are kept.
func (r *PlanRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.PlanModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete plan", "plan_id", id, "error", result.Error)
		return fmt.Errorf("failed to delete plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return plan.ErrPlanNotFound
	}

	r.logger.Infow("plan deleted", "plan_id", id)
	return nil
}

// ListActive returns purchasable plans, cheapest first.
func (r *PlanRepositoryImpl) ListActive(ctx context.Context) ([]*plan.Plan, error) {
	var list []*models.PlanModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("is_active = ?", true).
		Order("price ASC").Order("id ASC").
		Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list active plans", "error", err)
		return nil, fmt.Errorf("failed to list active plans: %w", err)
	}
	return r.mapper.ToEntities(list)
}

func (r *PlanRepositoryImpl) ListAll(ctx context.Context) ([]*plan.Plan, error) {
	var list []*models.PlanModel
	if err := db.GetTxFromContext(ctx, r.db).Order("id ASC").Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return r.mapper.ToEntities(list)
}
