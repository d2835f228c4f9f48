package usecases

import (
	"context"
	"fmt"

	"github.com/nutriplan/nutriplan/internal/application/common"
	"github.com/nutriplan/nutriplan/internal/domain/entitlement"
	"github.com/nutriplan/nutriplan/internal/domain/plan"
	"github.com/nutriplan/nutriplan/internal/domain/subscription"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

// ResolveActivePlanUseCase is the entitlement gate: it finds the plan behind
// the user's APPROVED subscription. It never repairs data.
type ResolveActivePlanUseCase struct {
	subscriptionRepo subscription.Repository
	planRepo         plan.Repository
	metrics          common.Metrics
	logger           logger.Interface
}

func NewResolveActivePlanUseCase(
	subscriptionRepo subscription.Repository,
	planRepo plan.Repository,
	metrics common.Metrics,
	logger logger.Interface,
) *ResolveActivePlanUseCase {
	return &ResolveActivePlanUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute returns entitlement.ErrNoActivePlan when the user holds no
// APPROVED subscription. With several, the most recently approved wins.
func (uc *ResolveActivePlanUseCase) Execute(ctx context.Context, userID uint) (*plan.Plan, error) {
	active, err := uc.subscriptionRepo.ListApprovedByUser(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to list approved subscriptions", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to resolve active plan: %w", err)
	}
	if len(active) == 0 {
		return nil, entitlement.ErrNoActivePlan
	}
	if len(active) > 1 {
		uc.metrics.IntegrityAnomaly(common.AnomalyMultipleApproved)
		uc.logger.Warnw("user holds more than one approved subscription",
			"user_id", userID,
			"count", len(active),
			"using_subscription_id", active[0].ID(),
		)
	}

	p, err := uc.planRepo.GetByID(ctx, active[0].PlanID())
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", active[0].PlanID())
		return nil, fmt.Errorf("failed to resolve active plan: %w", err)
	}
	if p == nil {
		uc.logger.Warnw("approved subscription references a deleted plan",
			"user_id", userID,
			"subscription_id", active[0].ID(),
			"plan_id", active[0].PlanID(),
		)
		return nil, entitlement.ErrNoActivePlan
	}
	return p, nil
}
