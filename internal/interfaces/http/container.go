package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nutriplan/nutriplan/internal/infrastructure/auth"
	"github.com/nutriplan/nutriplan/internal/infrastructure/config"
	"github.com/nutriplan/nutriplan/internal/infrastructure/metrics"
	"github.com/nutriplan/nutriplan/internal/infrastructure/permission"
	"github.com/nutriplan/nutriplan/internal/infrastructure/ratelimit"
	"github.com/nutriplan/nutriplan/internal/interfaces/http/middleware"
	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases and
// handlers, and wires them together. Shutdown releases what it opened.
type Container struct {
	// Core infrastructure
	engine  *gin.Engine
	db      *gorm.DB
	cfg     *config.Config
	log     logger.Interface
	redis   *redis.Client
	metrics *metrics.Metrics

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimit            gin.HandlerFunc
}

// NewContainer creates a new Container with all dependencies wired together.
// The database must already be migrated.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine:  gin.New(),
		db:      db,
		cfg:     cfg,
		log:     log,
		metrics: metrics.New(),
	}

	if err := c.initInfrastructure(); err != nil {
		c.Shutdown()
		return nil, err
	}
	c.repos = newRepositories(db, log)
	c.initUseCases()
	c.initHandlers()

	return c, nil
}

func (c *Container) initInfrastructure() error {
	jwtSvc := auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.Issuer, c.cfg.Auth.JWT.AccessExpMinutes)
	c.authMiddleware = middleware.NewAuthMiddleware(jwtSvc, c.log.Named("auth"))

	enforcer, err := permission.NewEnforcer(c.db, c.cfg.Permission.ModelPath, c.log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := permission.EnsureDefaultPolicies(enforcer); err != nil {
		return err
	}
	c.permissionMiddleware = middleware.NewPermissionMiddleware(enforcer, c.log.Named("permission"))

	if c.cfg.Redis.Enabled {
		c.redis = redis.NewClient(&redis.Options{
			Addr:     c.cfg.Redis.GetAddr(),
			Password: c.cfg.Redis.Password,
			DB:       c.cfg.Redis.DB,
		})
		if err := c.redis.Ping(context.Background()).Err(); err != nil {
			c.log.Warnw("redis unreachable, rate limiter will fail open until it recovers",
				"addr", c.cfg.Redis.GetAddr(),
				"error", err)
		}
	}

	c.rateLimit = c.newRateLimit()
	return nil
}

// newRateLimit picks Redis when enabled so limits hold across replicas, and
// the in-process cache otherwise.
func (c *Container) newRateLimit() gin.HandlerFunc {
	if !c.cfg.RateLimit.Enabled {
		return func(ctx *gin.Context) { ctx.Next() }
	}

	limiterCfg := ratelimit.Config{Limit: c.cfg.RateLimit.Limit, Window: c.cfg.RateLimit.Window()}
	var limiter ratelimit.RateLimiter
	if c.redis != nil {
		limiter = ratelimit.NewRedisRateLimiter(c.redis, limiterCfg)
	} else {
		limiter = ratelimit.NewMemoryRateLimiter(limiterCfg)
	}

	c.log.Infow("rate limiter configured",
		"backend", fmt.Sprintf("%T", limiter),
		"limit", limiterCfg.Limit,
		"window", limiterCfg.Window)

	return middleware.NewRateLimitMiddleware(limiter, c.log.Named("ratelimit")).Limit()
}

// Shutdown closes the connections the container opened. The database is
// owned by the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
