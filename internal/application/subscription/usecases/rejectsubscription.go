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

type RejectSubscriptionCommand struct {
	SubscriptionID uint
	AdminUserID    uint
}

type RejectSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	txManager        TransactionRunner
	metrics          common.Metrics
	logger           logger.Interface
}

func NewRejectSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	txManager TransactionRunner,
	metrics common.Metrics,
	logger logger.Interface,
) *RejectSubscriptionUseCase {
	return &RejectSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		metrics:          metrics,
		logger:           logger,
	}
}

func (uc *RejectSubscriptionUseCase) Execute(ctx context.Context, cmd RejectSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := uc.subscriptionRepo.GetByIDForUpdate(txCtx, cmd.SubscriptionID)
		if err != nil {
			return err
		}
		if sub == nil {
			return subscription.ErrSubscriptionNotFound
		}
		if err := sub.Reject(cmd.AdminUserID, time.Now()); err != nil {
			return err
		}
		return uc.subscriptionRepo.Update(txCtx, sub)
	})
	if err != nil {
		if appErr := domainError(err); appErr != nil {
			return nil, appErr
		}
		uc.logger.Errorw("failed to reject subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, fmt.Errorf("failed to reject subscription: %w", err)
	}

	uc.metrics.SubscriptionTransitioned(vo.StatusPending.String(), vo.StatusRejected.String())
	uc.logger.Infow("subscription rejected", "subscription_id", cmd.SubscriptionID, "rejected_by", cmd.AdminUserID)

	return loadDetail(ctx, uc.subscriptionRepo, cmd.SubscriptionID)
}
