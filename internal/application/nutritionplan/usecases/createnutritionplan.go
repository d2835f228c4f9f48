package usecases

import (
	"context"
	"fmt"

	"github.com/nutriplan/nutriplan/internal/application/nutritionplan/dto"
	"github.com/nutriplan/nutriplan/internal/domain/nutritionplan"
	"github.com/nutriplan/nutriplan/internal/domain/user"
	apperrors "github.com/nutriplan/nutriplan/internal/shared/errors"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

type CreateNutritionPlanCommand struct {
	UserID        uint
	Title         string
	Description   string
	DailyCalories *int
}

// CreateNutritionPlanUseCase creates a nutrition plan if the caller's active
// plan allows one more.
//
// By default the quota check and the insert are separate statements, so two
// concurrent requests at limit-1 can both succeed. In strict mode both run in
// one transaction that holds the owner's user row lock.
type CreateNutritionPlanUseCase struct {
	nutritionRepo nutritionplan.Repository
	userRepo      user.Repository
	quota         QuotaChecker
	txManager     TransactionRunner
	strict        bool
	logger        logger.Interface
}

func NewCreateNutritionPlanUseCase(
	nutritionRepo nutritionplan.Repository,
	userRepo user.Repository,
	quota QuotaChecker,
	txManager TransactionRunner,
	strict bool,
	logger logger.Interface,
) *CreateNutritionPlanUseCase {
	return &CreateNutritionPlanUseCase{
		nutritionRepo: nutritionRepo,
		userRepo:      userRepo,
		quota:         quota,
		txManager:     txManager,
		strict:        strict,
		logger:        logger,
	}
}

func (uc *CreateNutritionPlanUseCase) Execute(ctx context.Context, cmd CreateNutritionPlanCommand) (*dto.NutritionPlanDTO, error) {
	np, err := nutritionplan.NewNutritionPlan(cmd.UserID, cmd.Title, cmd.Description, cmd.DailyCalories)
	if err != nil {
		if appErr := domainError(err); appErr != nil {
			return nil, appErr
		}
		return nil, fmt.Errorf("invalid nutrition plan: %w", err)
	}

	create := func(ctx context.Context) error {
		if err := uc.quota.Check(ctx, cmd.UserID); err != nil {
			return err
		}
		return uc.nutritionRepo.Create(ctx, np)
	}

	if uc.strict {
		err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
			if err := uc.userRepo.LockForUpdate(txCtx, cmd.UserID); err != nil {
				return err
			}
			return create(txCtx)
		})
	} else {
		err = create(ctx)
	}
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		if appErr := domainError(err); appErr != nil {
			return nil, appErr
		}
		uc.logger.Errorw("failed to create nutrition plan", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to create nutrition plan: %w", err)
	}

	uc.logger.Infow("nutrition plan created", "nutrition_plan_id", np.ID(), "user_id", cmd.UserID, "strict", uc.strict)
	return dto.ToNutritionPlanDTO(np), nil
}
