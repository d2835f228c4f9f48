package usecases

import (
	"context"
	"fmt"

	"github.com/nutriplan/nutriplan/internal/application/nutritionplan/dto"
	"github.com/nutriplan/nutriplan/internal/domain/nutritionplan"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

// NutritionPlanQueriesUseCase lists, reads and deletes the caller's own
// nutrition plans. Plans owned by someone else are reported as not found.
type NutritionPlanQueriesUseCase struct {
	nutritionRepo nutritionplan.Repository
	logger        logger.Interface
}

func NewNutritionPlanQueriesUseCase(nutritionRepo nutritionplan.Repository, logger logger.Interface) *NutritionPlanQueriesUseCase {
	return &NutritionPlanQueriesUseCase{
		nutritionRepo: nutritionRepo,
		logger:        logger,
	}
}

func (uc *NutritionPlanQueriesUseCase) List(ctx context.Context, userID uint) ([]*dto.NutritionPlanDTO, error) {
	plans, err := uc.nutritionRepo.ListByUser(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to list nutrition plans", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list nutrition plans: %w", err)
	}
	return dto.ToNutritionPlanDTOs(plans), nil
}

func (uc *NutritionPlanQueriesUseCase) Get(ctx context.Context, userID, id uint) (*dto.NutritionPlanDTO, error) {
	np, err := uc.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return dto.ToNutritionPlanDTO(np), nil
}

// Delete frees one quota slot.
func (uc *NutritionPlanQueriesUseCase) Delete(ctx context.Context, userID, id uint) error {
	if _, err := uc.getOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := uc.nutritionRepo.Delete(ctx, id); err != nil {
		if appErr := domainError(err); appErr != nil {
			return appErr
		}
		uc.logger.Errorw("failed to delete nutrition plan", "error", err, "nutrition_plan_id", id)
		return fmt.Errorf("failed to delete nutrition plan: %w", err)
	}
	uc.logger.Infow("nutrition plan deleted", "nutrition_plan_id", id, "user_id", userID)
	return nil
}

func (uc *NutritionPlanQueriesUseCase) getOwned(ctx context.Context, userID, id uint) (*nutritionplan.NutritionPlan, error) {
	np, err := uc.nutritionRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get nutrition plan", "error", err, "nutrition_plan_id", id)
		return nil, fmt.Errorf("failed to get nutrition plan: %w", err)
	}
	if np == nil || np.UserID() != userID {
		return nil, domainError(nutritionplan.ErrNutritionPlanNotFound)
	}
	return np, nil
}
