package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gitlab.com/smartnest1/snh.energy_server/src/production/SNH.ApiService/middleware"
	logger "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Logger"
	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
	interfaces "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Repository/Interfaces"
)

// AlertController handles alert requests
type AlertController struct {
	alertRepo      interfaces.AlertRepository
	logger         *logger.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewAlertController creates a new alert controller
func NewAlertController(alertRepo interfaces.AlertRepository, logger *logger.Logger, authMiddleware *middleware.AuthMiddleware) *AlertController {
	return &AlertController{
		alertRepo:      alertRepo,
		logger:         logger,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the alert routes with Gin
func (c *AlertController) RegisterRoutes(router *gin.Engine) {
	alerts := router.Group("/v1/alerts")
	{
		alerts.POST("", c.authMiddleware.Authenticate(), c.authMiddleware.RequireRole(snhmodels.RoleTechnician), c.CreateAlert)
		alerts.GET("", c.authMiddleware.Authenticate(), c.ListAlerts)
		alerts.GET("/:alert_id", c.authMiddleware.Authenticate(), c.GetAlert)

		// Acknowledge and resolve record the acting user
		alerts.POST("/:alert_id/acknowledge", c.authMiddleware.Authenticate(), c.authMiddleware.RequireRole(snhmodels.RoleTechnician), c.AcknowledgeAlert)
		alerts.POST("/:alert_id/resolve", c.authMiddleware.Authenticate(), c.authMiddleware.RequireRole(snhmodels.RoleTechnician), c.ResolveAlert)
	}
}

type CreateAlertRequest struct {
	Type     string `json:"type" binding:"required"`
	Severity string `json:"severity,omitempty"`
	Message  string `json:"message,omitempty"`
	RoomID   *int64 `json:"room_id,omitempty"`
	SensorID *int64 `json:"sensor_id,omitempty"`
}

func (c *AlertController) CreateAlert(ctx *gin.Context) {
	var req CreateAlertRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	severity := snhmodels.AlertSeverity(req.Severity)
	if req.Severity == "" {
		severity = snhmodels.AlertSeverityInfo
	}

	alert := &snhmodels.Alert{
		Type:     req.Type,
		Severity: severity,
		Status:   snhmodels.AlertStatusActive,
		Message:  req.Message,
		RoomID:   req.RoomID,
		SensorID: req.SensorID,
	}

	created, err := c.alertRepo.Create(ctx, alert)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (c *AlertController) ListAlerts(ctx *gin.Context) {
	status := snhmodels.AlertStatus(ctx.Query("status"))

	alerts, err := c.alertRepo.List(ctx, status)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, alerts)
}

func (c *AlertController) GetAlert(ctx *gin.Context) {
	alertID, err := strconv.ParseInt(ctx.Param("alert_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert_id"})
		return
	}

	alert, err := c.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if alert == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}

	ctx.JSON(http.StatusOK, alert)
}

func (c *AlertController) AcknowledgeAlert(ctx *gin.Context) {
	alertID, err := strconv.ParseInt(ctx.Param("alert_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert_id"})
		return
	}

	userID, err := middleware.GetUserFromGinContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := c.alertRepo.Acknowledge(ctx, alertID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "alert not found or not active"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"alert_id": alertID, "status": snhmodels.AlertStatusAcknowledged})
}

func (c *AlertController) ResolveAlert(ctx *gin.Context) {
	alertID, err := strconv.ParseInt(ctx.Param("alert_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert_id"})
		return
	}

	userID, err := middleware.GetUserFromGinContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := c.alertRepo.Resolve(ctx, alertID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "alert not found or already resolved"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"alert_id": alertID, "status": snhmodels.AlertStatusResolved})
}
