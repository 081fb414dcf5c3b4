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

// RoomController handles room management requests
type RoomController struct {
	roomRepo       interfaces.RoomRepository
	logger         *logger.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewRoomController creates a new room controller
func NewRoomController(roomRepo interfaces.RoomRepository, logger *logger.Logger, authMiddleware *middleware.AuthMiddleware) *RoomController {
	return &RoomController{
		roomRepo:       roomRepo,
		logger:         logger,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the room routes with Gin
func (c *RoomController) RegisterRoutes(router *gin.Engine) {
	rooms := router.Group("/v1/rooms")
	{
		// Admin only - create/update/delete
		rooms.POST("", c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin(), c.CreateRoom)
		rooms.PATCH("/:room_id", c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin(), c.UpdateRoom)
		rooms.DELETE("/:room_id", c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin(), c.DeleteRoom)

		// Technicians and the assigned client steer mode and equipment
		rooms.PATCH("/:room_id/mode", c.authMiddleware.Authenticate(), c.SetMode)
		rooms.PATCH("/:room_id/equipment", c.authMiddleware.Authenticate(), c.SetEquipment)

		rooms.GET("", c.authMiddleware.Authenticate(), c.ListRooms)
		rooms.GET("/:room_id", c.authMiddleware.Authenticate(), c.GetRoom)
	}
}

type CreateRoomRequest struct {
	Number            string   `json:"number" binding:"required"`
	FloorID           *int64   `json:"floor_id,omitempty"`
	Type              string   `json:"type,omitempty"`
	TargetTemperature *float64 `json:"target_temperature,omitempty"`
	ClientID          *string  `json:"client_id,omitempty"`
}

func (c *RoomController) CreateRoom(ctx *gin.Context) {
	var req CreateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	roomType := req.Type
	if roomType == "" {
		roomType = "standard"
	}

	room := &snhmodels.Room{
		Number:            req.Number,
		FloorID:           req.FloorID,
		Type:              roomType,
		Status:            snhmodels.RoomStatusVacant,
		TargetTemperature: req.TargetTemperature,
		Mode:              snhmodels.RoomModeEco,
		ClientID:          req.ClientID,
	}

	created, err := c.roomRepo.Create(ctx, room)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (c *RoomController) ListRooms(ctx *gin.Context) {
	if floorFilter := ctx.Query("floor_id"); floorFilter != "" {
		floorID, err := strconv.ParseInt(floorFilter, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid floor_id"})
			return
		}
		rooms, err := c.roomRepo.ListByFloor(ctx, floorID)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, rooms)
		return
	}

	rooms, err := c.roomRepo.List(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, rooms)
}

func (c *RoomController) GetRoom(ctx *gin.Context) {
	roomID, err := strconv.ParseInt(ctx.Param("room_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_id"})
		return
	}

	room, err := c.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if room == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	ctx.JSON(http.StatusOK, room)
}

type UpdateRoomRequest struct {
	Number            *string  `json:"number,omitempty"`
	FloorID           *int64   `json:"floor_id,omitempty"`
	Type              *string  `json:"type,omitempty"`
	Status            *string  `json:"status,omitempty"`
	TargetTemperature *float64 `json:"target_temperature,omitempty"`
	ClientID          *string  `json:"client_id,omitempty"`
}

func (c *RoomController) UpdateRoom(ctx *gin.Context) {
	roomID, err := strconv.ParseInt(ctx.Param("room_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_id"})
		return
	}

	existing, err := c.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	var req UpdateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Number != nil {
		existing.Number = *req.Number
	}
	if req.FloorID != nil {
		existing.FloorID = req.FloorID
	}
	if req.Type != nil {
		existing.Type = *req.Type
	}
	if req.Status != nil {
		status := snhmodels.RoomStatus(*req.Status)
		if !status.Valid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room status"})
			return
		}
		existing.Status = status
	}
	if req.TargetTemperature != nil {
		existing.TargetTemperature = req.TargetTemperature
	}
	if req.ClientID != nil {
		existing.ClientID = req.ClientID
	}

	if err := c.roomRepo.Update(ctx, existing); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, existing)
}

type SetModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

func (c *RoomController) SetMode(ctx *gin.Context) {
	roomID, err := strconv.ParseInt(ctx.Param("room_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_id"})
		return
	}

	var req SetModeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode := snhmodels.RoomMode(req.Mode)
	if !mode.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room mode"})
		return
	}

	if err := c.roomRepo.SetMode(ctx, roomID, mode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"room_id": roomID, "mode": mode})
}

type SetEquipmentRequest struct {
	Equipment string `json:"equipment" binding:"required"`
	State     *bool  `json:"state" binding:"required"`
}

func (c *RoomController) SetEquipment(ctx *gin.Context) {
	roomID, err := strconv.ParseInt(ctx.Param("room_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_id"})
		return
	}

	var req SetEquipmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.roomRepo.SetEquipment(ctx, roomID, req.Equipment, *req.State); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"room_id": roomID, "equipment": req.Equipment, "state": *req.State})
}

func (c *RoomController) DeleteRoom(ctx *gin.Context) {
	roomID, err := strconv.ParseInt(ctx.Param("room_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_id"})
		return
	}

	if err := c.roomRepo.Delete(ctx, roomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deleted": true})
}
