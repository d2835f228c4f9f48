package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/nutriplan/nutriplan/internal/application/entitlement/dto"
	plandto "github.com/nutriplan/nutriplan/internal/application/plan/dto"
	"github.com/nutriplan/nutriplan/internal/domain/entitlement"
	"github.com/nutriplan/nutriplan/internal/domain/nutritionplan"
	apperrors "github.com/nutriplan/nutriplan/internal/shared/errors"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
	"github.com/nutriplan/nutriplan/internal/shared/services/markdown"
)

type GetEntitlementUseCase struct {
	resolver      *ResolveActivePlanUseCase
	nutritionRepo nutritionplan.Repository
	renderer      markdown.Renderer
	logger        logger.Interface
}

func NewGetEntitlementUseCase(
	resolver *ResolveActivePlanUseCase,
	nutritionRepo nutritionplan.Repository,
	renderer markdown.Renderer,
	logger logger.Interface,
) *GetEntitlementUseCase {
	return &GetEntitlementUseCase{
		resolver:      resolver,
		nutritionRepo: nutritionRepo,
		renderer:      renderer,
		logger:        logger,
	}
}

func (uc *GetEntitlementUseCase) Execute(ctx context.Context, userID uint) (*dto.EntitlementDTO, error) {
	p, err := uc.resolver.Execute(ctx, userID)
	if errors.Is(err, entitlement.ErrNoActivePlan) {
		return nil, apperrors.NewEntitlementRequiredError("you do not have an active subscription")
	}
	if err != nil {
		return nil, err
	}

	used, err := uc.nutritionRepo.CountByUser(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to count nutrition plans", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to count nutrition plans: %w", err)
	}

	usage := entitlement.Usage{Plan: p, Used: used}
	return &dto.EntitlementDTO{
		Plan:      plandto.ToPlanDTO(p, uc.renderer),
		Limit:     p.NutritionPlanLimit(),
		Used:      used,
		Remaining: usage.Remaining(),
	}, nil
}
