package usecases

import (
	"context"
	"fmt"

	"github.com/nutriplan/nutriplan/internal/domain/plan"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

// DeletePlanUseCase removes a plan row. Subscriptions that reference it are
// kept; listings show them with an empty plan name.
type DeletePlanUseCase struct {
	planRepo plan.Repository
	logger   logger.Interface
}

func NewDeletePlanUseCase(planRepo plan.Repository, logger logger.Interface) *DeletePlanUseCase {
	return &DeletePlanUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *DeletePlanUseCase) Execute(ctx context.Context, planID uint) error {
	if err := uc.planRepo.Delete(ctx, planID); err != nil {
		if appErr := domainError(err); appErr != nil {
			return appErr
		}
		uc.logger.Errorw("failed to delete plan", "error", err, "plan_id", planID)
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	uc.logger.Infow("plan deleted successfully", "plan_id", planID)
	return nil
}
