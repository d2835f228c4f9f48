package usecases

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nutriplan/nutriplan/internal/application/common"
	"github.com/nutriplan/nutriplan/internal/application/subscription/dto"
	"github.com/nutriplan/nutriplan/internal/domain/plan"
	"github.com/nutriplan/nutriplan/internal/domain/subscription"
	"github.com/nutriplan/nutriplan/internal/domain/user"
	apperrors "github.com/nutriplan/nutriplan/internal/shared/errors"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

type CreateSubscriptionCommand struct {
	UserID uint
	PlanID uint
}

type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	planRepo         plan.Repository
	userRepo         user.Repository
	metrics          common.Metrics
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	planRepo plan.Repository,
	userRepo user.Repository,
	metrics common.Metrics,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		userRepo:         userRepo,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute records a PENDING request. Holding an approved subscription does
// not block a new request; approval takes care of replacing it.
func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, unknownReference(user.ErrUserNotFound)
	}

	p, err := uc.planRepo.GetByID(ctx, cmd.PlanID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", cmd.PlanID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return nil, unknownReference(plan.ErrPlanNotFound)
	}
	if !p.IsActive() {
		return nil, domainError(plan.ErrPlanInactive)
	}

	sub, err := subscription.NewSubscription(u.ID, p.ID(), p.Price())
	if err != nil {
		uc.logger.Errorw("failed to build subscription", "error", err, "user_id", cmd.UserID, "plan_id", cmd.PlanID)
		return nil, fmt.Errorf("failed to build subscription: %w", err)
	}

	if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
		uc.logger.Errorw("failed to persist subscription", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to persist subscription: %w", err)
	}

	uc.metrics.SubscriptionTransitioned("", sub.Status().String())
	uc.logger.Infow("subscription requested",
		"subscription_id", sub.ID(),
		"user_id", u.ID,
		"plan_id", p.ID(),
		"amount", sub.Amount().String(),
	)

	price := p.Price()
	return &dto.SubscriptionDTO{
		ID:               sub.ID(),
		UserID:           u.ID,
		PlanID:           p.ID(),
		Amount:           sub.Amount(),
		Status:           sub.Status().String(),
		SubscriptionDate: sub.SubscriptionDate(),
		UserName:         u.Name,
		UserEmail:        u.Email,
		PlanName:         p.Name(),
		PlanPrice:        &price,
	}, nil
}

// unknownReference reports an id from the request body that does not exist.
// It keeps the not_found type but renders as 400.
func unknownReference(err error) error {
	return apperrors.GetAppError(domainError(err)).WithCode(http.StatusBadRequest)
}
