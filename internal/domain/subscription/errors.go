package subscription

import (
	"errors"
	"fmt"

	vo "github.com/nutriplan/nutriplan/internal/domain/subscription/valueobjects"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrInvalidTransition is wrapped by every rejected state change.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrForbidden is returned when a user acts on a subscription they do not own.
	ErrForbidden = errors.New("subscription belongs to another user")
)

func newTransitionError(from, to vo.SubscriptionStatus) error {
	return fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, from, to)
}
