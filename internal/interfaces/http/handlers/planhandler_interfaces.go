package handlers

import (
	"context"

	plandto "github.com/nutriplan/nutriplan/internal/application/plan/dto"
	planusecases "github.com/nutriplan/nutriplan/internal/application/plan/usecases"
)

type createPlanUseCase interface {
	Execute(ctx context.Context, cmd planusecases.CreatePlanCommand) (*plandto.PlanDTO, error)
}

type updatePlanUseCase interface {
	Execute(ctx context.Context, cmd planusecases.UpdatePlanCommand) (*plandto.PlanDTO, error)
}

type getPlanUseCase interface {
	Execute(ctx context.Context, planID uint) (*plandto.PlanDTO, error)
}

type listPlansUseCase interface {
	ListActive(ctx context.Context) ([]*plandto.PlanDTO, error)
	ListAll(ctx context.Context) ([]*plandto.PlanDTO, error)
}

type setPlanStatusUseCase interface {
	Activate(ctx context.Context, planID uint) (*plandto.PlanDTO, error)
	Deactivate(ctx context.Context, planID uint) (*plandto.PlanDTO, error)
}

type deletePlanUseCase interface {
	Execute(ctx context.Context, planID uint) error
}
