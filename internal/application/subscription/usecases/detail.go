package usecases

import (
	"context"
	"fmt"

	"github.com/nutriplan/nutriplan/internal/application/subscription/dto"
	"github.com/nutriplan/nutriplan/internal/domain/subscription"
)

// loadDetail re-reads a subscription through the joined read model.
func loadDetail(ctx context.Context, repo subscription.Repository, id uint) (*dto.SubscriptionDTO, error) {
	detail, err := repo.GetDetailByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription detail: %w", err)
	}
	if detail == nil {
		return nil, domainError(subscription.ErrSubscriptionNotFound)
	}
	return dto.FromDetail(detail), nil
}
