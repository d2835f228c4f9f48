package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/nutriplan/nutriplan/internal/application/common"
	"github.com/nutriplan/nutriplan/internal/application/subscription/dto"
	"github.com/nutriplan/nutriplan/internal/domain/subscription"
	vo "github.com/nutriplan/nutriplan/internal/domain/subscription/valueobjects"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	SubscriptionID   uint
	RequestingUserID uint
	// SkipOwnershipCheck is set for admin-initiated cancellations.
	SkipOwnershipCheck bool
}

type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	txManager        TransactionRunner
	metrics          common.Metrics
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	txManager TransactionRunner,
	metrics common.Metrics,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		metrics:          metrics,
		logger:           logger,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := uc.subscriptionRepo.GetByIDForUpdate(txCtx, cmd.SubscriptionID)
		if err != nil {
			return err
		}
		if sub == nil {
			return subscription.ErrSubscriptionNotFound
		}
		if !cmd.SkipOwnershipCheck && !sub.IsOwnedBy(cmd.RequestingUserID) {
			return subscription.ErrForbidden
		}
		if err := sub.Cancel(time.Now()); err != nil {
			return err
		}
		return uc.subscriptionRepo.Update(txCtx, sub)
	})
	if err != nil {
		if appErr := domainError(err); appErr != nil {
			return nil, appErr
		}
		uc.logger.Errorw("failed to cancel subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, fmt.Errorf("failed to cancel subscription: %w", err)
	}

	uc.metrics.SubscriptionTransitioned(vo.StatusApproved.String(), vo.StatusCancelled.String())
	uc.logger.Infow("subscription cancelled",
		"subscription_id", cmd.SubscriptionID,
		"requested_by", cmd.RequestingUserID,
		"admin", cmd.SkipOwnershipCheck,
	)

	return loadDetail(ctx, uc.subscriptionRepo, cmd.SubscriptionID)
}
