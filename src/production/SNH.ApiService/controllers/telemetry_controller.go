package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gitlab.com/smartnest1/snh.energy_server/src/production/SNH.ApiService/middleware"
	logger "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Logger"
	interfaces "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Repository/Interfaces"
)

// TelemetryController exposes the raw telemetry archive, admin only
type TelemetryController struct {
	rawReadingRepo interfaces.RawReadingRepository
	logger         *logger.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewTelemetryController creates a new telemetry controller
func NewTelemetryController(rawReadingRepo interfaces.RawReadingRepository, logger *logger.Logger, authMiddleware *middleware.AuthMiddleware) *TelemetryController {
	return &TelemetryController{
		rawReadingRepo: rawReadingRepo,
		logger:         logger,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the telemetry routes with Gin
func (c *TelemetryController) RegisterRoutes(router *gin.Engine) {
	router.GET("/v1/telemetry/raw", c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin(), c.ListRawReadings)
}

func (c *TelemetryController) ListRawReadings(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 1000 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	readings, err := c.rawReadingRepo.Latest(ctx, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, readings)
}
