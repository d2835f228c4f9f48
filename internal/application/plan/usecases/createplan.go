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

type CreatePlanCommand struct {
	Name               string
	Description        string
	Features           []string
	Price              decimal.Decimal
	NutritionPlanLimit *int // nil means unlimited
}

type CreatePlanUseCase struct {
	planRepo plan.Repository
	renderer markdown.Renderer
	logger   logger.Interface
}

func NewCreatePlanUseCase(
	planRepo plan.Repository,
	renderer markdown.Renderer,
	logger logger.Interface,
) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo: planRepo,
		renderer: renderer,
		logger:   logger,
	}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*dto.PlanDTO, error) {
	p, err := plan.NewPlan(cmd.Name, cmd.Price, cmd.NutritionPlanLimit, cmd.Description, cmd.Features)
	if err != nil {
		if appErr := domainError(err); appErr != nil {
			return nil, appErr
		}
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	existing, err := uc.planRepo.GetByName(ctx, p.Name())
	if err != nil {
		uc.logger.Errorw("failed to check plan name", "error", err, "name", p.Name())
		return nil, fmt.Errorf("failed to check plan name: %w", err)
	}
	if existing != nil {
		return nil, domainError(plan.ErrDuplicateName)
	}

	// The unique index still catches a concurrent insert of the same name.
	if err := uc.planRepo.Create(ctx, p); err != nil {
		if appErr := domainError(err); appErr != nil {
			return nil, appErr
		}
		uc.logger.Errorw("failed to persist plan", "error", err, "name", p.Name())
		return nil, fmt.Errorf("failed to persist plan: %w", err)
	}

	uc.logger.Infow("plan created successfully", "plan_id", p.ID(), "name", p.Name())
	return dto.ToPlanDTO(p, uc.renderer), nil
}
