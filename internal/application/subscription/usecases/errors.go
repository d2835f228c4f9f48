package usecases

import (
	"errors"

	"github.com/nutriplan/nutriplan/internal/domain/plan"
	"github.com/nutriplan/nutriplan/internal/domain/shared"
	"github.com/nutriplan/nutriplan/internal/domain/subscription"
	"github.com/nutriplan/nutriplan/internal/domain/user"
	apperrors "github.com/nutriplan/nutriplan/internal/shared/errors"
)

// domainError translates domain errors into AppErrors. It returns nil for
// anything else, which the caller wraps and logs.
func domainError(err error) error {
	switch {
	case errors.Is(err, subscription.ErrSubscriptionNotFound):
		return apperrors.NewNotFoundError("subscription not found")
	case errors.Is(err, subscription.ErrInvalidTransition):
		return apperrors.NewInvalidTransitionError(err.Error())
	case errors.Is(err, subscription.ErrForbidden):
		return apperrors.NewForbiddenError("you can only cancel your own subscription")
	case errors.Is(err, plan.ErrPlanNotFound):
		return apperrors.NewNotFoundError("plan not found")
	case errors.Is(err, plan.ErrPlanInactive):
		return apperrors.NewPlanInactiveError("plan is not available for new subscriptions")
	case errors.Is(err, user.ErrUserNotFound):
		return apperrors.NewNotFoundError("user not found")
	case errors.Is(err, shared.ErrConcurrentModification):
		return apperrors.NewConflictError("subscription was modified concurrently, retry the request")
	}
	return nil
}

