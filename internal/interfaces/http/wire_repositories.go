package http

import (
	"gorm.io/gorm"

	"github.com/nutriplan/nutriplan/internal/domain/nutritionplan"
	"github.com/nutriplan/nutriplan/internal/domain/plan"
	"github.com/nutriplan/nutriplan/internal/domain/subscription"
	"github.com/nutriplan/nutriplan/internal/domain/user"
	"github.com/nutriplan/nutriplan/internal/infrastructure/repository"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	userRepo          user.Repository
	planRepo          plan.Repository
	subscriptionRepo  subscription.Repository
	nutritionPlanRepo nutritionplan.Repository
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:          repository.NewUserRepository(db, log),
		planRepo:          repository.NewPlanRepository(db, log),
		subscriptionRepo:  repository.NewSubscriptionRepository(db, log),
		nutritionPlanRepo: repository.NewNutritionPlanRepository(db, log),
	}
}
