package usecases

import (
	"context"
	"fmt"

	"github.com/nutriplan/nutriplan/internal/application/plan/dto"
	"github.com/nutriplan/nutriplan/internal/domain/plan"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
	"github.com/nutriplan/nutriplan/internal/shared/services/markdown"
)

type GetPlanUseCase struct {
	planRepo plan.Repository
	renderer markdown.Renderer
	logger   logger.Interface
}

func NewGetPlanUseCase(
	planRepo plan.Repository,
	renderer markdown.Renderer,
	logger logger.Interface,
) *GetPlanUseCase {
	return &GetPlanUseCase{
		planRepo: planRepo,
		renderer: renderer,
		logger:   logger,
	}
}

func (uc *GetPlanUseCase) Execute(ctx context.Context, planID uint) (*dto.PlanDTO, error) {
	p, err := uc.planRepo.GetByID(ctx, planID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", planID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return nil, domainError(plan.ErrPlanNotFound)
	}
	return dto.ToPlanDTO(p, uc.renderer), nil
}
