package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/nutriplan/nutriplan/internal/application/common"
	"github.com/nutriplan/nutriplan/internal/application/subscription/dto"
	"github.com/nutriplan/nutriplan/internal/domain/subscription"
	vo "github.com/nutriplan/nutriplan/internal/domain/subscription/valueobjects"
	"github.com/nutriplan/nutriplan/internal/domain/user"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

type ApproveSubscriptionCommand struct {
	SubscriptionID uint
	AdminUserID    uint
}

// ApproveSubscriptionUseCase approves a PENDING subscription and cancels
// every other APPROVED subscription of the same owner in one transaction.
type ApproveSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	userRepo         user.Repository
	txManager        TransactionRunner
	metrics          common.Metrics
	logger           logger.Interface
}

func NewApproveSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	userRepo user.Repository,
	txManager TransactionRunner,
	metrics common.Metrics,
	logger logger.Interface,
) *ApproveSubscriptionUseCase {
	return &ApproveSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		txManager:        txManager,
		metrics:          metrics,
		logger:           logger,
	}
}

func (uc *ApproveSubscriptionUseCase) Execute(ctx context.Context, cmd ApproveSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	var (
		ownerID   uint
		cancelled []uint
	)

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		target, err := uc.subscriptionRepo.GetByIDForUpdate(txCtx, cmd.SubscriptionID)
		if err != nil {
			return err
		}
		if target == nil {
			return subscription.ErrSubscriptionNotFound
		}

		now := time.Now()
		if err := target.Approve(cmd.AdminUserID, now); err != nil {
			return err
		}
		ownerID = target.UserID()

		// All approvals for one owner queue on this lock.
		if err := uc.userRepo.LockForUpdate(txCtx, ownerID); err != nil {
			return err
		}

		active, err := uc.subscriptionRepo.ListApprovedByUserForUpdate(txCtx, ownerID)
		if err != nil {
			return err
		}
		if len(active) > 1 {
			uc.metrics.IntegrityAnomaly(common.AnomalyMultipleApproved)
			uc.logger.Warnw("user holds more than one approved subscription",
				"user_id", ownerID,
				"count", len(active),
			)
		}

		// Prior subscriptions are written before the target so the
		// one-approved-row unique key never sees two at once.
		for _, prior := range active {
			if err := prior.Cancel(now); err != nil {
				return err
			}
			if err := uc.subscriptionRepo.Update(txCtx, prior); err != nil {
				return err
			}
			cancelled = append(cancelled, prior.ID())
		}

		return uc.subscriptionRepo.Update(txCtx, target)
	})
	if err != nil {
		if appErr := domainError(err); appErr != nil {
			return nil, appErr
		}
		uc.logger.Errorw("failed to approve subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, fmt.Errorf("failed to approve subscription: %w", err)
	}

	for range cancelled {
		uc.metrics.SubscriptionTransitioned(vo.StatusApproved.String(), vo.StatusCancelled.String())
	}
	uc.metrics.SubscriptionTransitioned(vo.StatusPending.String(), vo.StatusApproved.String())
	uc.logger.Infow("subscription approved",
		"subscription_id", cmd.SubscriptionID,
		"user_id", ownerID,
		"approved_by", cmd.AdminUserID,
		"cancelled_subscription_ids", cancelled,
	)

	return loadDetail(ctx, uc.subscriptionRepo, cmd.SubscriptionID)
}
