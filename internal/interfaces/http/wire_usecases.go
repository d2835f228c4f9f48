package http

import (
	entitlementUsecases "github.com/nutriplan/nutriplan/internal/application/entitlement/usecases"
	nutritionUsecases "github.com/nutriplan/nutriplan/internal/application/nutritionplan/usecases"
	planUsecases "github.com/nutriplan/nutriplan/internal/application/plan/usecases"
	subscriptionUsecases "github.com/nutriplan/nutriplan/internal/application/subscription/usecases"
	"github.com/nutriplan/nutriplan/internal/shared/db"
	"github.com/nutriplan/nutriplan/internal/shared/services/markdown"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Plan
	createPlanUC    *planUsecases.CreatePlanUseCase
	updatePlanUC    *planUsecases.UpdatePlanUseCase
	getPlanUC       *planUsecases.GetPlanUseCase
	listPlansUC     *planUsecases.ListPlansUseCase
	setPlanStatusUC *planUsecases.SetPlanStatusUseCase
	deletePlanUC    *planUsecases.DeletePlanUseCase

	// Subscription
	createSubscriptionUC       *subscriptionUsecases.CreateSubscriptionUseCase
	getSubscriptionUC          *subscriptionUsecases.GetSubscriptionUseCase
	listSubscriptionsUC        *subscriptionUsecases.ListSubscriptionsUseCase
	approveSubscriptionUC      *subscriptionUsecases.ApproveSubscriptionUseCase
	rejectSubscriptionUC       *subscriptionUsecases.RejectSubscriptionUseCase
	cancelSubscriptionUC       *subscriptionUsecases.CancelSubscriptionUseCase
	updateSubscriptionStatusUC *subscriptionUsecases.UpdateSubscriptionStatusUseCase
	countActiveSubscriptionsUC *subscriptionUsecases.CountActiveSubscriptionsUseCase

	// Entitlement
	resolveActivePlanUC *entitlementUsecases.ResolveActivePlanUseCase
	quotaGuard          *entitlementUsecases.QuotaGuard
	getEntitlementUC    *entitlementUsecases.GetEntitlementUseCase

	// Nutrition plans
	createNutritionPlanUC *nutritionUsecases.CreateNutritionPlanUseCase
	nutritionPlanQueries  *nutritionUsecases.NutritionPlanQueriesUseCase
}

func (c *Container) initUseCases() {
	r := c.repos
	renderer := markdown.NewRenderer()
	txManager := db.NewTransactionManager(c.db)

	ucs := &allUseCases{
		createPlanUC:    planUsecases.NewCreatePlanUseCase(r.planRepo, renderer, c.log),
		updatePlanUC:    planUsecases.NewUpdatePlanUseCase(r.planRepo, renderer, c.log),
		getPlanUC:       planUsecases.NewGetPlanUseCase(r.planRepo, renderer, c.log),
		listPlansUC:     planUsecases.NewListPlansUseCase(r.planRepo, renderer, c.log),
		setPlanStatusUC: planUsecases.NewSetPlanStatusUseCase(r.planRepo, renderer, c.log),
		deletePlanUC:    planUsecases.NewDeletePlanUseCase(r.planRepo, c.log),

		createSubscriptionUC: subscriptionUsecases.NewCreateSubscriptionUseCase(
			r.subscriptionRepo, r.planRepo, r.userRepo, c.metrics, c.log),
		getSubscriptionUC:   subscriptionUsecases.NewGetSubscriptionUseCase(r.subscriptionRepo, c.log),
		listSubscriptionsUC: subscriptionUsecases.NewListSubscriptionsUseCase(r.subscriptionRepo, c.log),
		approveSubscriptionUC: subscriptionUsecases.NewApproveSubscriptionUseCase(
			r.subscriptionRepo, r.userRepo, txManager, c.metrics, c.log),
		rejectSubscriptionUC: subscriptionUsecases.NewRejectSubscriptionUseCase(
			r.subscriptionRepo, txManager, c.metrics, c.log),
		cancelSubscriptionUC: subscriptionUsecases.NewCancelSubscriptionUseCase(
			r.subscriptionRepo, txManager, c.metrics, c.log),
		countActiveSubscriptionsUC: subscriptionUsecases.NewCountActiveSubscriptionsUseCase(
			r.subscriptionRepo, c.metrics, c.log),

		resolveActivePlanUC: entitlementUsecases.NewResolveActivePlanUseCase(
			r.subscriptionRepo, r.planRepo, c.metrics, c.log),

		nutritionPlanQueries: nutritionUsecases.NewNutritionPlanQueriesUseCase(r.nutritionPlanRepo, c.log),
	}

	ucs.updateSubscriptionStatusUC = subscriptionUsecases.NewUpdateSubscriptionStatusUseCase(
		ucs.approveSubscriptionUC, ucs.rejectSubscriptionUC, ucs.cancelSubscriptionUC)

	ucs.quotaGuard = entitlementUsecases.NewQuotaGuard(ucs.resolveActivePlanUC, r.nutritionPlanRepo, c.metrics, c.log)
	ucs.getEntitlementUC = entitlementUsecases.NewGetEntitlementUseCase(
		ucs.resolveActivePlanUC, r.nutritionPlanRepo, renderer, c.log)
	ucs.createNutritionPlanUC = nutritionUsecases.NewCreateNutritionPlanUseCase(
		r.nutritionPlanRepo, r.userRepo, ucs.quotaGuard, txManager, c.cfg.Quota.StrictMode, c.log)

	c.ucs = ucs
}
