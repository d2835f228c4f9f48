package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutriplan/nutriplan/internal/shared/logger"
)

// PingFunc reports whether a dependency is reachable.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	pingDB PingFunc
	logger logger.Interface
}

func NewHealthHandler(pingDB PingFunc, logger logger.Interface) *HealthHandler {
	return &HealthHandler{pingDB: pingDB, logger: logger}
}

// HealthCheck
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if err := h.pingDB(c.Request.Context()); err != nil {
		h.logger.Errorw("health check failed", "component", "database", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"service":  "nutriplan",
			"database": "down",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "nutriplan",
		"database": "up",
	})
}
