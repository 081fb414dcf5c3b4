package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/smartnest1/snh.energy_server/src/production/SNH.ApiService/health"
	logger "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Logger"
)

// HealthController handles health check requests
type HealthController struct {
	healthChecker *health.HealthChecker
	logger        *logger.Logger
}

// NewHealthController creates a new health controller
func NewHealthController(healthChecker *health.HealthChecker, logger *logger.Logger) *HealthController {
	return &HealthController{
		healthChecker: healthChecker,
		logger:        logger,
	}
}

// RegisterRoutes registers the health routes with Gin
func (c *HealthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", c.GetHealth)
}

func (c *HealthController) GetHealth(ctx *gin.Context) {
	status := c.healthChecker.GetHealthStatus(ctx)

	code := http.StatusOK
	if status["status"] != "ok" {
		code = http.StatusServiceUnavailable
	}

	ctx.JSON(code, status)
}
