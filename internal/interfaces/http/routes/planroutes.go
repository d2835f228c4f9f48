// Package routes provides HTTP route configurations.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nutriplan/nutriplan/internal/infrastructure/permission"
	"github.com/nutriplan/nutriplan/internal/interfaces/http/handlers"
	"github.com/nutriplan/nutriplan/internal/interfaces/http/middleware"
)

// PlanRouteConfig holds dependencies for plan routes.
type PlanRouteConfig struct {
	PlanHandler          *handlers.PlanHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	RateLimit            gin.HandlerFunc
}

// SetupPlanRoutes configures plan routes.
func SetupPlanRoutes(api *gin.RouterGroup, cfg *PlanRouteConfig) {
	plans := api.Group("/plans")
	{
		// Public catalog
		plans.GET("", cfg.RateLimit, cfg.PlanHandler.ListActivePlans)

		plansAdmin := plans.Group("")
		plansAdmin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.RateLimit)
		{
			plansAdmin.GET("/all",
				cfg.PermissionMiddleware.RequirePermission(permission.ResourcePlan, permission.ActionListAll),
				cfg.PlanHandler.ListAllPlans)

			manage := cfg.PermissionMiddleware.RequirePermission(permission.ResourcePlan, permission.ActionManage)
			plansAdmin.POST("", manage, cfg.PlanHandler.CreatePlan)
			plansAdmin.PUT("/:id", manage, cfg.PlanHandler.UpdatePlan)
			plansAdmin.PATCH("/:id/activate", manage, cfg.PlanHandler.ActivatePlan)
			plansAdmin.PATCH("/:id/deactivate", manage, cfg.PlanHandler.DeactivatePlan)
			plansAdmin.DELETE("/:id", manage, cfg.PlanHandler.DeletePlan)
		}

		// Must come after /all so the static segment wins
		plans.GET("/:id", cfg.RateLimit, cfg.PlanHandler.GetPlan)
	}
}
