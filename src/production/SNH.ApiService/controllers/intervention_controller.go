package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gitlab.com/smartnest1/snh.energy_server/src/production/SNH.ApiService/middleware"
	logger "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Logger"
	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
	interfaces "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Repository/Interfaces"
)

// InterventionController handles maintenance intervention requests
type InterventionController struct {
	interventionRepo interfaces.InterventionRepository
	logger           *logger.Logger
	authMiddleware   *middleware.AuthMiddleware
}

// NewInterventionController creates a new intervention controller
func NewInterventionController(interventionRepo interfaces.InterventionRepository, logger *logger.Logger, authMiddleware *middleware.AuthMiddleware) *InterventionController {
	return &InterventionController{
		interventionRepo: interventionRepo,
		logger:           logger,
		authMiddleware:   authMiddleware,
	}
}

// RegisterRoutes registers the intervention routes with Gin
func (c *InterventionController) RegisterRoutes(router *gin.Engine) {
	interventions := router.Group("/v1/interventions")
	{
		interventions.POST("", c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin(), c.CreateIntervention)
		interventions.PATCH("/:intervention_id", c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin(), c.UpdateIntervention)
		interventions.DELETE("/:intervention_id", c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin(), c.DeleteIntervention)

		interventions.GET("", c.authMiddleware.Authenticate(), c.authMiddleware.RequireRole(snhmodels.RoleTechnician), c.ListInterventions)
		interventions.GET("/:intervention_id", c.authMiddleware.Authenticate(), c.authMiddleware.RequireRole(snhmodels.RoleTechnician), c.GetIntervention)
		interventions.POST("/:intervention_id/complete", c.authMiddleware.Authenticate(), c.authMiddleware.RequireRole(snhmodels.RoleTechnician), c.CompleteIntervention)
	}

	router.GET("/v1/technicians/:technician_id/interventions", c.authMiddleware.Authenticate(), c.authMiddleware.RequireRole(snhmodels.RoleTechnician), c.ListByTechnician)
}

type CreateInterventionRequest struct {
	RoomID       *int64     `json:"room_id,omitempty"`
	TechnicianID *string    `json:"technician_id,omitempty"`
	Type         string     `json:"type" binding:"required"`
	Description  string     `json:"description,omitempty"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"`
}

func (c *InterventionController) CreateIntervention(ctx *gin.Context) {
	var req CreateInterventionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intervention := &snhmodels.Intervention{
		RoomID:       req.RoomID,
		TechnicianID: req.TechnicianID,
		Type:         req.Type,
		Description:  req.Description,
		Status:       snhmodels.InterventionStatusPending,
		ScheduledAt:  req.ScheduledAt,
	}

	created, err := c.interventionRepo.Create(ctx, intervention)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (c *InterventionController) ListInterventions(ctx *gin.Context) {
	interventions, err := c.interventionRepo.List(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, interventions)
}

func (c *InterventionController) ListByTechnician(ctx *gin.Context) {
	technicianID := ctx.Param("technician_id")

	interventions, err := c.interventionRepo.ListByTechnician(ctx, technicianID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, interventions)
}

func (c *InterventionController) GetIntervention(ctx *gin.Context) {
	interventionID, err := strconv.ParseInt(ctx.Param("intervention_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid intervention_id"})
		return
	}

	intervention, err := c.interventionRepo.GetByID(ctx, interventionID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if intervention == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "intervention not found"})
		return
	}

	ctx.JSON(http.StatusOK, intervention)
}

type UpdateInterventionRequest struct {
	RoomID       *int64     `json:"room_id,omitempty"`
	TechnicianID *string    `json:"technician_id,omitempty"`
	Type         *string    `json:"type,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Status       *string    `json:"status,omitempty"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

func (c *InterventionController) UpdateIntervention(ctx *gin.Context) {
	interventionID, err := strconv.ParseInt(ctx.Param("intervention_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid intervention_id"})
		return
	}

	existing, err := c.interventionRepo.GetByID(ctx, interventionID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "intervention not found"})
		return
	}

	var req UpdateInterventionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.RoomID != nil {
		existing.RoomID = req.RoomID
	}
	if req.TechnicianID != nil {
		existing.TechnicianID = req.TechnicianID
	}
	if req.Type != nil {
		existing.Type = *req.Type
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Status != nil {
		status := snhmodels.InterventionStatus(*req.Status)
		if !status.Valid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid intervention status"})
			return
		}
		existing.Status = status
	}
	if req.ScheduledAt != nil {
		existing.ScheduledAt = req.ScheduledAt
	}
	if req.Notes != nil {
		existing.Notes = *req.Notes
	}

	if err := c.interventionRepo.Update(ctx, existing); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, existing)
}

type CompleteInterventionRequest struct {
	Notes string `json:"notes,omitempty"`
}

func (c *InterventionController) CompleteIntervention(ctx *gin.Context) {
	interventionID, err := strconv.ParseInt(ctx.Param("intervention_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid intervention_id"})
		return
	}

	var req CompleteInterventionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.interventionRepo.Complete(ctx, interventionID, req.Notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "intervention not found or already completed"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"intervention_id": interventionID, "status": snhmodels.InterventionStatusCompleted})
}

func (c *InterventionController) DeleteIntervention(ctx *gin.Context) {
	interventionID, err := strconv.ParseInt(ctx.Param("intervention_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid intervention_id"})
		return
	}

	if err := c.interventionRepo.Delete(ctx, interventionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "intervention not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deleted": true})
}
