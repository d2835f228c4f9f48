package plan

import "errors"

var (
	ErrPlanNotFound = errors.New("plan not found")

	// ErrDuplicateName is returned when another plan already uses the name.
	ErrDuplicateName = errors.New("plan name already exists")

	// ErrPlanInactive is returned when subscribing to a deactivated plan.
	ErrPlanInactive = errors.New("plan is inactive")

	ErrInvalidName  = errors.New("plan name is required")
	ErrNameTooLong  = errors.New("plan name must be at most 100 characters")
	ErrInvalidPrice = errors.New("plan price must be non-negative")
	ErrInvalidLimit = errors.New("nutrition plan limit must be non-negative")
)
