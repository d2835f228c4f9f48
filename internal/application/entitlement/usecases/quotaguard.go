package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/nutriplan/nutriplan/internal/application/common"
	"github.com/nutriplan/nutriplan/internal/domain/entitlement"
	"github.com/nutriplan/nutriplan/internal/domain/nutritionplan"
	apperrors "github.com/nutriplan/nutriplan/internal/shared/errors"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

// QuotaGuard decides whether a user may create one more nutrition plan.
type QuotaGuard struct {
	resolver      *ResolveActivePlanUseCase
	nutritionRepo nutritionplan.Repository
	metrics       common.Metrics
	logger        logger.Interface
}

func NewQuotaGuard(
	resolver *ResolveActivePlanUseCase,
	nutritionRepo nutritionplan.Repository,
	metrics common.Metrics,
	logger logger.Interface,
) *QuotaGuard {
	return &QuotaGuard{
		resolver:      resolver,
		nutritionRepo: nutritionRepo,
		metrics:       metrics,
		logger:        logger,
	}
}

// Check returns nil when creation is allowed, an entitlement_required or
// quota_exceeded AppError when it is not. It takes no locks; callers that
// need the check and the insert to be atomic run both inside a transaction
// holding the owner's row lock.
func (g *QuotaGuard) Check(ctx context.Context, userID uint) error {
	p, err := g.resolver.Execute(ctx, userID)
	if errors.Is(err, entitlement.ErrNoActivePlan) {
		g.metrics.QuotaRejected(common.QuotaReasonNoActivePlan)
		return apperrors.NewEntitlementRequiredError("an approved subscription is required to create nutrition plans")
	}
	if err != nil {
		return err
	}
	if p.IsUnlimited() {
		return nil
	}

	count, err := g.nutritionRepo.CountByUser(ctx, userID)
	if err != nil {
		g.logger.Errorw("failed to count nutrition plans", "error", err, "user_id", userID)
		return fmt.Errorf("failed to count nutrition plans: %w", err)
	}

	if err := entitlement.CheckQuota(p, count); err != nil {
		var quotaErr *entitlement.QuotaExceededError
		if errors.As(err, &quotaErr) {
			g.metrics.QuotaRejected(common.QuotaReasonLimitReached)
			g.logger.Infow("nutrition plan quota reached",
				"user_id", userID,
				"plan_id", p.ID(),
				"limit", quotaErr.Limit,
				"current", quotaErr.Current,
			)
			return apperrors.NewQuotaExceededError(fmt.Sprintf(
				"your %s plan allows %d nutrition plans and you already have %d",
				p.Name(), quotaErr.Limit, quotaErr.Current,
			))
		}
		return err
	}
	return nil
}
