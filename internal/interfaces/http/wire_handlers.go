package http

import (
	"context"

	"github.com/nutriplan/nutriplan/internal/infrastructure/database"
	"github.com/nutriplan/nutriplan/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	planHandler          *handlers.PlanHandler
	subscriptionHandler  *handlers.SubscriptionHandler
	nutritionPlanHandler *handlers.NutritionPlanHandler
	entitlementHandler   *handlers.EntitlementHandler
	healthHandler        *handlers.HealthHandler
}

func (c *Container) initHandlers() {
	u := c.ucs

	c.hdlrs = &allHandlers{
		planHandler: handlers.NewPlanHandler(
			u.createPlanUC, u.updatePlanUC, u.getPlanUC, u.listPlansUC, u.setPlanStatusUC, u.deletePlanUC,
			c.log.Named("plan-handler"),
		),
		subscriptionHandler: handlers.NewSubscriptionHandler(
			u.createSubscriptionUC, u.getSubscriptionUC, u.listSubscriptionsUC,
			u.approveSubscriptionUC, u.rejectSubscriptionUC, u.cancelSubscriptionUC,
			u.updateSubscriptionStatusUC, u.countActiveSubscriptionsUC,
			c.log.Named("subscription-handler"),
		),
		nutritionPlanHandler: handlers.NewNutritionPlanHandler(
			u.createNutritionPlanUC, u.nutritionPlanQueries, c.log.Named("nutrition-plan-handler"),
		),
		entitlementHandler: handlers.NewEntitlementHandler(u.getEntitlementUC, c.log.Named("entitlement-handler")),
		healthHandler: handlers.NewHealthHandler(func(ctx context.Context) error {
			return database.Ping(ctx, c.db)
		}, c.log.Named("health")),
	}
}
