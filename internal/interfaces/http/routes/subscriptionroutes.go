package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nutriplan/nutriplan/internal/infrastructure/permission"
	"github.com/nutriplan/nutriplan/internal/interfaces/http/handlers"
	"github.com/nutriplan/nutriplan/internal/interfaces/http/middleware"
)

// SubscriptionRouteConfig holds dependencies for subscription routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler  *handlers.SubscriptionHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	RateLimit            gin.HandlerFunc
}

// SetupSubscriptionRoutes configures subscription routes. Ownership of a
// single subscription is checked by the use cases, not by middleware.
func SetupSubscriptionRoutes(api *gin.RouterGroup, cfg *SubscriptionRouteConfig) {
	subs := api.Group("/subscriptions")
	subs.Use(cfg.AuthMiddleware.RequireAuth(), cfg.RateLimit)
	{
		h := cfg.SubscriptionHandler
		listAll := cfg.PermissionMiddleware.RequirePermission(permission.ResourceSubscription, permission.ActionListAll)
		review := cfg.PermissionMiddleware.RequirePermission(permission.ResourceSubscription, permission.ActionReview)

		// Collection operations
		subs.POST("", h.CreateSubscription)
		subs.GET("", h.ListMySubscriptions)

		// Specific named endpoints (must come BEFORE /:id)
		subs.GET("/count/active", h.CountActiveSubscriptions)
		subs.GET("/all", listAll, h.ListAllSubscriptions)
		subs.GET("/pending", listAll, h.ListPendingSubscriptions)
		subs.GET("/status/:status", listAll, h.ListSubscriptionsByStatus)

		subs.GET("/:id", h.GetSubscription)
		subs.PATCH("/:id/cancel", h.CancelSubscription)
		subs.PATCH("/:id/status", review, h.UpdateSubscriptionStatus)
		subs.PATCH("/:id/approve", review, h.ApproveSubscription)
		subs.PATCH("/:id/reject", review, h.RejectSubscription)
	}
}
