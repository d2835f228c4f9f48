package usecases

import (
	"context"
	"fmt"

	"github.com/nutriplan/nutriplan/internal/application/subscription/dto"
	"github.com/nutriplan/nutriplan/internal/domain/subscription"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

type GetSubscriptionQuery struct {
	SubscriptionID uint
	CallerID       uint
	CallerIsAdmin  bool
}

type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewGetSubscriptionUseCase(subscriptionRepo subscription.Repository, logger logger.Interface) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute hides other users' subscriptions behind NotFound so ids cannot be
// probed.
func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, query GetSubscriptionQuery) (*dto.SubscriptionDTO, error) {
	detail, err := uc.subscriptionRepo.GetDetailByID(ctx, query.SubscriptionID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "subscription_id", query.SubscriptionID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if detail == nil || (!query.CallerIsAdmin && detail.UserID != query.CallerID) {
		return nil, domainError(subscription.ErrSubscriptionNotFound)
	}
	return dto.FromDetail(detail), nil
}
