package usecases

import (
	"context"
	"fmt"

	"github.com/nutriplan/nutriplan/internal/application/plan/dto"
	"github.com/nutriplan/nutriplan/internal/domain/plan"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
	"github.com/nutriplan/nutriplan/internal/shared/services/markdown"
)

// SetPlanStatusUseCase activates or deactivates a plan. Deactivation only
// hides the plan from new subscriptions; approved subscribers keep it.
type SetPlanStatusUseCase struct {
	planRepo plan.Repository
	renderer markdown.Renderer
	logger   logger.Interface
}

func NewSetPlanStatusUseCase(
	planRepo plan.Repository,
	renderer markdown.Renderer,
	logger logger.Interface,
) *SetPlanStatusUseCase {
	return &SetPlanStatusUseCase{
		planRepo: planRepo,
		renderer: renderer,
		logger:   logger,
	}
}

func (uc *SetPlanStatusUseCase) Activate(ctx context.Context, planID uint) (*dto.PlanDTO, error) {
	return uc.execute(ctx, planID, true)
}

func (uc *SetPlanStatusUseCase) Deactivate(ctx context.Context, planID uint) (*dto.PlanDTO, error) {
	return uc.execute(ctx, planID, false)
}

func (uc *SetPlanStatusUseCase) execute(ctx context.Context, planID uint, active bool) (*dto.PlanDTO, error) {
	p, err := uc.planRepo.GetByID(ctx, planID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", planID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return nil, domainError(plan.ErrPlanNotFound)
	}

	var changed bool
	if active {
		changed = p.Activate()
	} else {
		changed = p.Deactivate()
	}
	if !changed {
		return dto.ToPlanDTO(p, uc.renderer), nil
	}

	if err := uc.planRepo.Update(ctx, p); err != nil {
		if appErr := domainError(err); appErr != nil {
			return nil, appErr
		}
		uc.logger.Errorw("failed to persist plan status", "error", err, "plan_id", planID)
		return nil, fmt.Errorf("failed to persist plan status: %w", err)
	}

	uc.logger.Infow("plan status changed", "plan_id", planID, "is_active", active)
	return dto.ToPlanDTO(p, uc.renderer), nil
}
