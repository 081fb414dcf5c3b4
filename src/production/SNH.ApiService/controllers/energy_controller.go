package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gitlab.com/smartnest1/snh.energy_server/src/production/SNH.ApiService/middleware"
	logger "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Logger"
	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
	interfaces "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Repository/Interfaces"
)

// EnergyController handles energy consumption requests
type EnergyController struct {
	energyRepo     interfaces.EnergyRepository
	logger         *logger.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewEnergyController creates a new energy controller
func NewEnergyController(energyRepo interfaces.EnergyRepository, logger *logger.Logger, authMiddleware *middleware.AuthMiddleware) *EnergyController {
	return &EnergyController{
		energyRepo:     energyRepo,
		logger:         logger,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the energy routes with Gin
func (c *EnergyController) RegisterRoutes(router *gin.Engine) {
	energy := router.Group("/v1/energy")
	{
		energy.POST("/readings", c.authMiddleware.Authenticate(), c.authMiddleware.RequireRole(snhmodels.RoleTechnician), c.CreateReading)
		energy.GET("/consumption", c.authMiddleware.Authenticate(), c.GetConsumption)
		energy.GET("/statistics", c.authMiddleware.Authenticate(), c.GetStatistics)
	}
}

type CreateEnergyReadingRequest struct {
	// Pointers so a meter delta of 0 kWh still passes the required check
	RoomID         *int64     `json:"room_id" binding:"required"`
	ConsumptionKWh *float64   `json:"consumption_kwh" binding:"required"`
	RecordedAt     *time.Time `json:"recorded_at,omitempty"`
}

func (c *EnergyController) CreateReading(ctx *gin.Context) {
	var req CreateEnergyReadingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recordedAt := time.Now().UTC()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	reading := &snhmodels.EnergyReading{
		RoomID:         *req.RoomID,
		ConsumptionKWh: *req.ConsumptionKWh,
		RecordedAt:     recordedAt,
	}

	if err := c.energyRepo.Insert(ctx, reading); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, reading)
}

// parseEnergyParams reads the shared room_id/from/to/limit query filters
func parseEnergyParams(ctx *gin.Context) (interfaces.EnergyQueryParams, bool) {
	var params interfaces.EnergyQueryParams

	if roomFilter := ctx.Query("room_id"); roomFilter != "" {
		roomID, err := strconv.ParseInt(roomFilter, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_id"})
			return params, false
		}
		params.RoomID = &roomID
	}

	if fromFilter := ctx.Query("from"); fromFilter != "" {
		from, err := time.Parse(time.RFC3339, fromFilter)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid from timestamp, expected RFC3339"})
			return params, false
		}
		params.From = &from
	}

	if toFilter := ctx.Query("to"); toFilter != "" {
		to, err := time.Parse(time.RFC3339, toFilter)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid to timestamp, expected RFC3339"})
			return params, false
		}
		params.To = &to
	}

	params.Limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "100"))

	return params, true
}

func (c *EnergyController) GetConsumption(ctx *gin.Context) {
	params, ok := parseEnergyParams(ctx)
	if !ok {
		return
	}

	readings, err := c.energyRepo.Consumption(ctx, params)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, readings)
}

func (c *EnergyController) GetStatistics(ctx *gin.Context) {
	params, ok := parseEnergyParams(ctx)
	if !ok {
		return
	}

	stats, err := c.energyRepo.Statistics(ctx, params)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
