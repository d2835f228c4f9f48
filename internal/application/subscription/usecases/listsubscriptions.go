package usecases

import (
	"context"
	"fmt"

	"github.com/nutriplan/nutriplan/internal/application/subscription/dto"
	"github.com/nutriplan/nutriplan/internal/domain/subscription"
	vo "github.com/nutriplan/nutriplan/internal/domain/subscription/valueobjects"
	apperrors "github.com/nutriplan/nutriplan/internal/shared/errors"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

// ListSubscriptionsUseCase serves every subscription listing. Each row is
// joined with its owner and plan by the repository in a single query.
type ListSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewListSubscriptionsUseCase(subscriptionRepo subscription.Repository, logger logger.Interface) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *ListSubscriptionsUseCase) ListByUser(ctx context.Context, userID uint, page, pageSize int) (*dto.ListSubscriptionsResult, error) {
	return uc.list(ctx, subscription.Filter{UserID: &userID, Page: page, PageSize: pageSize})
}

func (uc *ListSubscriptionsUseCase) ListAll(ctx context.Context, page, pageSize int) (*dto.ListSubscriptionsResult, error) {
	return uc.list(ctx, subscription.Filter{Page: page, PageSize: pageSize})
}

// ListByStatus accepts the status in any letter case.
func (uc *ListSubscriptionsUseCase) ListByStatus(ctx context.Context, status string, page, pageSize int) (*dto.ListSubscriptionsResult, error) {
	parsed, err := vo.ParseStatus(status)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	return uc.list(ctx, subscription.Filter{Status: &parsed, Page: page, PageSize: pageSize})
}

func (uc *ListSubscriptionsUseCase) ListPending(ctx context.Context, page, pageSize int) (*dto.ListSubscriptionsResult, error) {
	pending := vo.StatusPending
	return uc.list(ctx, subscription.Filter{Status: &pending, Page: page, PageSize: pageSize})
}

func (uc *ListSubscriptionsUseCase) list(ctx context.Context, filter subscription.Filter) (*dto.ListSubscriptionsResult, error) {
	details, total, err := uc.subscriptionRepo.ListDetails(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return &dto.ListSubscriptionsResult{
		Items:    dto.FromDetails(details),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
