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

// FloorController handles floor management requests
type FloorController struct {
	floorRepo      interfaces.FloorRepository
	logger         *logger.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewFloorController creates a new floor controller
func NewFloorController(floorRepo interfaces.FloorRepository, logger *logger.Logger, authMiddleware *middleware.AuthMiddleware) *FloorController {
	return &FloorController{
		floorRepo:      floorRepo,
		logger:         logger,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the floor routes with Gin
func (c *FloorController) RegisterRoutes(router *gin.Engine) {
	floors := router.Group("/v1/floors")
	{
		floors.POST("", c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin(), c.CreateFloor)
		floors.PATCH("/:floor_id", c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin(), c.UpdateFloor)
		floors.DELETE("/:floor_id", c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin(), c.DeleteFloor)

		floors.GET("", c.authMiddleware.Authenticate(), c.ListFloors)
		floors.GET("/:floor_id", c.authMiddleware.Authenticate(), c.GetFloor)
	}
}

type CreateFloorRequest struct {
	Name  string `json:"name" binding:"required"`
	Level int    `json:"level"`
}

func (c *FloorController) CreateFloor(ctx *gin.Context) {
	var req CreateFloorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	floor := &snhmodels.Floor{
		Name:  req.Name,
		Level: req.Level,
	}

	created, err := c.floorRepo.Create(ctx, floor)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (c *FloorController) ListFloors(ctx *gin.Context) {
	floors, err := c.floorRepo.List(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, floors)
}

func (c *FloorController) GetFloor(ctx *gin.Context) {
	floorID, err := strconv.ParseInt(ctx.Param("floor_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid floor_id"})
		return
	}

	floor, err := c.floorRepo.GetByID(ctx, floorID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if floor == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "floor not found"})
		return
	}

	ctx.JSON(http.StatusOK, floor)
}

type UpdateFloorRequest struct {
	Name  *string `json:"name,omitempty"`
	Level *int    `json:"level,omitempty"`
}

func (c *FloorController) UpdateFloor(ctx *gin.Context) {
	floorID, err := strconv.ParseInt(ctx.Param("floor_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid floor_id"})
		return
	}

	existing, err := c.floorRepo.GetByID(ctx, floorID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "floor not found"})
		return
	}

	var req UpdateFloorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Level != nil {
		existing.Level = *req.Level
	}

	if err := c.floorRepo.Update(ctx, existing); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, existing)
}

func (c *FloorController) DeleteFloor(ctx *gin.Context) {
	floorID, err := strconv.ParseInt(ctx.Param("floor_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid floor_id"})
		return
	}

	if err := c.floorRepo.Delete(ctx, floorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "floor not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deleted": true})
}
