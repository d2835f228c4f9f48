package usecases

import (
	"context"
	"fmt"

	"github.com/nutriplan/nutriplan/internal/application/plan/dto"
	"github.com/nutriplan/nutriplan/internal/domain/plan"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
	"github.com/nutriplan/nutriplan/internal/shared/services/markdown"
)

type ListPlansUseCase struct {
	planRepo plan.Repository
	renderer markdown.Renderer
	logger   logger.Interface
}

func NewListPlansUseCase(
	planRepo plan.Repository,
	renderer markdown.Renderer,
	logger logger.Interface,
) *ListPlansUseCase {
	return &ListPlansUseCase{
		planRepo: planRepo,
		renderer: renderer,
		logger:   logger,
	}
}

// ListActive returns the public catalog, cheapest first.
func (uc *ListPlansUseCase) ListActive(ctx context.Context) ([]*dto.PlanDTO, error) {
	plans, err := uc.planRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list active plans", "error", err)
		return nil, fmt.Errorf("failed to list active plans: %w", err)
	}
	return dto.ToPlanDTOs(plans, uc.renderer), nil
}

// ListAll includes inactive plans and is reserved for admins.
func (uc *ListPlansUseCase) ListAll(ctx context.Context) ([]*dto.PlanDTO, error) {
	plans, err := uc.planRepo.ListAll(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return dto.ToPlanDTOs(plans, uc.renderer), nil
}
