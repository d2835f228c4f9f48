package usecases

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nutriplan/nutriplan/internal/application/subscription/dto"
	vo "github.com/nutriplan/nutriplan/internal/domain/subscription/valueobjects"
	apperrors "github.com/nutriplan/nutriplan/internal/shared/errors"
)

type UpdateSubscriptionStatusCommand struct {
	SubscriptionID uint
	AdminUserID    uint
	Status         string
}

// UpdateSubscriptionStatusUseCase is the generic admin status endpoint. It
// dispatches to approve, reject or cancel; invalid transitions are reported
// as 400 here rather than the 409 of the dedicated routes.
type UpdateSubscriptionStatusUseCase struct {
	approve *ApproveSubscriptionUseCase
	reject  *RejectSubscriptionUseCase
	cancel  *CancelSubscriptionUseCase
}

func NewUpdateSubscriptionStatusUseCase(
	approve *ApproveSubscriptionUseCase,
	reject *RejectSubscriptionUseCase,
	cancel *CancelSubscriptionUseCase,
) *UpdateSubscriptionStatusUseCase {
	return &UpdateSubscriptionStatusUseCase{
		approve: approve,
		reject:  reject,
		cancel:  cancel,
	}
}

func (uc *UpdateSubscriptionStatusUseCase) Execute(ctx context.Context, cmd UpdateSubscriptionStatusCommand) (*dto.SubscriptionDTO, error) {
	target, err := vo.ParseStatus(cmd.Status)
	if err != nil {
		return nil, apperrors.NewInvalidTransitionError(err.Error()).WithCode(http.StatusBadRequest)
	}

	var result *dto.SubscriptionDTO
	switch target {
	case vo.StatusApproved:
		result, err = uc.approve.Execute(ctx, ApproveSubscriptionCommand{
			SubscriptionID: cmd.SubscriptionID,
			AdminUserID:    cmd.AdminUserID,
		})
	case vo.StatusRejected:
		result, err = uc.reject.Execute(ctx, RejectSubscriptionCommand{
			SubscriptionID: cmd.SubscriptionID,
			AdminUserID:    cmd.AdminUserID,
		})
	case vo.StatusCancelled:
		result, err = uc.cancel.Execute(ctx, CancelSubscriptionCommand{
			SubscriptionID:     cmd.SubscriptionID,
			RequestingUserID:   cmd.AdminUserID,
			SkipOwnershipCheck: true,
		})
	default:
		err = apperrors.NewInvalidTransitionError(fmt.Sprintf("cannot move a subscription to %s", target))
	}

	if appErr := apperrors.GetAppError(err); appErr != nil && appErr.Type == apperrors.ErrorTypeInvalidTransition {
		return nil, appErr.WithCode(http.StatusBadRequest)
	}
	return result, err
}
