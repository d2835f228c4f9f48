package usecases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nutriplan/nutriplan/internal/application/plan/dto"
	"github.com/nutriplan/nutriplan/internal/domain/plan"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
	"github.com/nutriplan/nutriplan/internal/shared/services/markdown"
)

// UpdatePlanCommand replaces every editable field. Price changes never touch
// existing subscriptions, whose amount was fixed at creation.
type UpdatePlanCommand struct {
	PlanID             uint
	Name               string
	Description        string
	Features           []string
	Price              decimal.Decimal
	NutritionPlanLimit *int
}

type UpdatePlanUseCase struct {
	planRepo plan.Repository
	renderer markdown.Renderer
	logger   logger.Interface
}

func NewUpdatePlanUseCase(
	planRepo plan.Repository,
	renderer markdown.Renderer,
	logger logger.Interface,
) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{
		planRepo: planRepo,
		renderer: renderer,
		logger:   logger,
	}
}

func (uc *UpdatePlanUseCase) Execute(ctx context.Context, cmd UpdatePlanCommand) (*dto.PlanDTO, error) {
	p, err := uc.planRepo.GetByID(ctx, cmd.PlanID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", cmd.PlanID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return nil, domainError(plan.ErrPlanNotFound)
	}

	name := plan.NormalizeName(cmd.Name)
	if name != p.Name() {
		other, err := uc.planRepo.GetByName(ctx, name)
		if err != nil {
			uc.logger.Errorw("failed to check plan name", "error", err, "name", name)
			return nil, fmt.Errorf("failed to check plan name: %w", err)
		}
		if other != nil && other.ID() != p.ID() {
			return nil, domainError(plan.ErrDuplicateName)
		}
	}

	if err := p.Update(cmd.Name, cmd.Price, cmd.NutritionPlanLimit, cmd.Description, cmd.Features); err != nil {
		if appErr := domainError(err); appErr != nil {
			return nil, appErr
		}
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	if err := uc.planRepo.Update(ctx, p); err != nil {
		if appErr := domainError(err); appErr != nil {
			return nil, appErr
		}
		uc.logger.Errorw("failed to update plan", "error", err, "plan_id", cmd.PlanID)
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	uc.logger.Infow("plan updated successfully", "plan_id", p.ID(), "version", p.Version())
	return dto.ToPlanDTO(p, uc.renderer), nil
}
