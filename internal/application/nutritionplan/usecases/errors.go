package usecases

import (
	"errors"

	"github.com/nutriplan/nutriplan/internal/domain/nutritionplan"
	"github.com/nutriplan/nutriplan/internal/domain/user"
	apperrors "github.com/nutriplan/nutriplan/internal/shared/errors"
)

func domainError(err error) error {
	switch {
	case errors.Is(err, nutritionplan.ErrNutritionPlanNotFound):
		return apperrors.NewNotFoundError("nutrition plan not found")
	case errors.Is(err, nutritionplan.ErrInvalidTitle), errors.Is(err, nutritionplan.ErrInvalidCalories):
		return apperrors.NewValidationError(err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		return apperrors.NewNotFoundError("user not found")
	}
	return nil
}
