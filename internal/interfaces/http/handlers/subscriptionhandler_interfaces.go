package handlers

import (
	"context"

	subdto "github.com/nutriplan/nutriplan/internal/application/subscription/dto"
	subusecases "github.com/nutriplan/nutriplan/internal/application/subscription/usecases"
)

type createSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd subusecases.CreateSubscriptionCommand) (*subdto.SubscriptionDTO, error)
}

type getSubscriptionUseCase interface {
	Execute(ctx context.Context, query subusecases.GetSubscriptionQuery) (*subdto.SubscriptionDTO, error)
}

type listSubscriptionsUseCase interface {
	ListByUser(ctx context.Context, userID uint, page, pageSize int) (*subdto.ListSubscriptionsResult, error)
	ListAll(ctx context.Context, page, pageSize int) (*subdto.ListSubscriptionsResult, error)
	ListByStatus(ctx context.Context, status string, page, pageSize int) (*subdto.ListSubscriptionsResult, error)
	ListPending(ctx context.Context, page, pageSize int) (*subdto.ListSubscriptionsResult, error)
}

type approveSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd subusecases.ApproveSubscriptionCommand) (*subdto.SubscriptionDTO, error)
}

type rejectSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd subusecases.RejectSubscriptionCommand) (*subdto.SubscriptionDTO, error)
}

type cancelSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd subusecases.CancelSubscriptionCommand) (*subdto.SubscriptionDTO, error)
}

type updateSubscriptionStatusUseCase interface {
	Execute(ctx context.Context, cmd subusecases.UpdateSubscriptionStatusCommand) (*subdto.SubscriptionDTO, error)
}

type countActiveSubscriptionsUseCase interface {
	Execute(ctx context.Context, userID uint) (int64, error)
}
