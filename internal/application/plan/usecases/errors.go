package usecases

import (
	"errors"

	"github.com/nutriplan/nutriplan/internal/domain/plan"
	"github.com/nutriplan/nutriplan/internal/domain/shared"
	apperrors "github.com/nutriplan/nutriplan/internal/shared/errors"
)

// toAppError translates plan domain errors; anything unknown is returned
// unchanged and ends up as a 500.
func domainError(err error) error {
	switch {
	case errors.Is(err, plan.ErrPlanNotFound):
		return apperrors.NewNotFoundError("plan not found")
	case errors.Is(err, plan.ErrDuplicateName):
		return apperrors.NewDuplicateNameError("plan name already exists")
	case errors.Is(err, plan.ErrInvalidName),
		errors.Is(err, plan.ErrNameTooLong),
		errors.Is(err, plan.ErrInvalidPrice),
		errors.Is(err, plan.ErrInvalidLimit):
		return apperrors.NewValidationError(err.Error())
	case errors.Is(err, shared.ErrConcurrentModification):
		return apperrors.NewConflictError("plan was modified concurrently, retry the request")
	}
	return nil
}
