package usecases

import (
	"context"
	"fmt"

	"github.com/nutriplan/nutriplan/internal/application/common"
	"github.com/nutriplan/nutriplan/internal/domain/subscription"
	vo "github.com/nutriplan/nutriplan/internal/domain/subscription/valueobjects"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

type CountActiveSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	metrics          common.Metrics
	logger           logger.Interface
}

func NewCountActiveSubscriptionsUseCase(
	subscriptionRepo subscription.Repository,
	metrics common.Metrics,
	logger logger.Interface,
) *CountActiveSubscriptionsUseCase {
	return &CountActiveSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute returns the number of APPROVED subscriptions the user holds,
// which is 0 or 1 unless the data has been corrupted.
func (uc *CountActiveSubscriptionsUseCase) Execute(ctx context.Context, userID uint) (int64, error) {
	count, err := uc.subscriptionRepo.CountByUserAndStatus(ctx, userID, vo.StatusApproved)
	if err != nil {
		uc.logger.Errorw("failed to count active subscriptions", "error", err, "user_id", userID)
		return 0, fmt.Errorf("failed to count active subscriptions: %w", err)
	}
	if count > 1 {
		uc.metrics.IntegrityAnomaly(common.AnomalyMultipleApproved)
		uc.logger.Warnw("user holds more than one approved subscription", "user_id", userID, "count", count)
	}
	return count, nil
}
