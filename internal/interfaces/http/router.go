package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/nutriplan/nutriplan/docs"
	"github.com/nutriplan/nutriplan/internal/infrastructure/config"
	"github.com/nutriplan/nutriplan/internal/interfaces/http/middleware"
	"github.com/nutriplan/nutriplan/internal/interfaces/http/routes"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

// APIPrefix is the base path of every versioned route.
const APIPrefix = "/api/v1"

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.log.Named("http")))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.Metrics(r.metrics))

	r.engine.GET("/health", r.hdlrs.healthHandler.HealthCheck)
	r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	if r.cfg.Server.EnableSwagger {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.engine.Group(APIPrefix)

	routes.SetupPlanRoutes(api, &routes.PlanRouteConfig{
		PlanHandler:          r.hdlrs.planHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		RateLimit:            r.rateLimit,
	})
	routes.SetupSubscriptionRoutes(api, &routes.SubscriptionRouteConfig{
		SubscriptionHandler:  r.hdlrs.subscriptionHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		RateLimit:            r.rateLimit,
	})
	routes.SetupNutritionPlanRoutes(api, &routes.NutritionPlanRouteConfig{
		NutritionPlanHandler: r.hdlrs.nutritionPlanHandler,
		EntitlementHandler:   r.hdlrs.entitlementHandler,
		AuthMiddleware:       r.authMiddleware,
		RateLimit:            r.rateLimit,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
