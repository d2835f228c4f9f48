package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nutriplan/nutriplan/internal/interfaces/http/handlers"
	"github.com/nutriplan/nutriplan/internal/interfaces/http/middleware"
)

// NutritionPlanRouteConfig holds dependencies for nutrition plan and
// entitlement routes.
type NutritionPlanRouteConfig struct {
	NutritionPlanHandler *handlers.NutritionPlanHandler
	EntitlementHandler   *handlers.EntitlementHandler
	AuthMiddleware       *middleware.AuthMiddleware
	RateLimit            gin.HandlerFunc
}

func SetupNutritionPlanRoutes(api *gin.RouterGroup, cfg *NutritionPlanRouteConfig) {
	api.GET("/entitlement", cfg.AuthMiddleware.RequireAuth(), cfg.RateLimit, cfg.EntitlementHandler.GetEntitlement)

	plans := api.Group("/nutrition-plans")
	plans.Use(cfg.AuthMiddleware.RequireAuth(), cfg.RateLimit)
	{
		plans.POST("", cfg.NutritionPlanHandler.CreateNutritionPlan)
		plans.GET("", cfg.NutritionPlanHandler.ListNutritionPlans)
		plans.GET("/:id", cfg.NutritionPlanHandler.GetNutritionPlan)
		plans.DELETE("/:id", cfg.NutritionPlanHandler.DeleteNutritionPlan)
	}
}
