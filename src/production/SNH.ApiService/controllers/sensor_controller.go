package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gitlab.com/smartnest1/snh.energy_server/src/production/SNH.ApiService/middleware"
	snhingestor "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Ingestor"
	logger "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Logger"
	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
	interfaces "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Repository/Interfaces"
)

// SensorController handles sensor management requests
type SensorController struct {
	sensorRepo     interfaces.SensorRepository
	readingRepo    interfaces.SensorReadingRepository
	writer         *snhingestor.SensorWriter
	cache          *snhingestor.HotCache
	logger         *logger.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewSensorController creates a new sensor controller
func NewSensorController(
	sensorRepo interfaces.SensorRepository,
	readingRepo interfaces.SensorReadingRepository,
	writer *snhingestor.SensorWriter,
	cache *snhingestor.HotCache,
	logger *logger.Logger,
	authMiddleware *middleware.AuthMiddleware,
) *SensorController {
	return &SensorController{
		sensorRepo:     sensorRepo,
		readingRepo:    readingRepo,
		writer:         writer,
		cache:          cache,
		logger:         logger,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the sensor routes with Gin
func (c *SensorController) RegisterRoutes(router *gin.Engine) {
	sensors := router.Group("/v1/sensors")
	{
		// Admin only - create/update/delete
		sensors.POST("", c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin(), c.CreateSensor)
		sensors.PATCH("/:sensor_id", c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin(), c.UpdateSensor)
		sensors.DELETE("/:sensor_id", c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin(), c.DeleteSensor)

		// Manual value write, shares the ingestion write path
		sensors.POST("/:sensor_id/value", c.authMiddleware.Authenticate(), c.authMiddleware.RequireRole(snhmodels.RoleTechnician), c.SetSensorValue)

		sensors.GET("", c.authMiddleware.Authenticate(), c.ListSensors)
		sensors.GET("/:sensor_id", c.authMiddleware.Authenticate(), c.GetSensor)
		sensors.GET("/:sensor_id/latest", c.authMiddleware.Authenticate(), c.GetLatestReading)
		sensors.GET("/:sensor_id/readings", c.authMiddleware.Authenticate(), c.ListReadings)
	}

	router.GET("/v1/rooms/:room_id/sensors", c.authMiddleware.Authenticate(), c.ListSensorsByRoom)
}

type CreateSensorRequest struct {
	Name   string `json:"name" binding:"required"`
	Type   string `json:"type" binding:"required"`
	RoomID *int64 `json:"room_id,omitempty"`
	Unit   string `json:"unit,omitempty"`
}

func (c *SensorController) CreateSensor(ctx *gin.Context) {
	var req CreateSensorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sensorType := snhmodels.SensorType(req.Type)
	if !sensorType.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid sensor type"})
		return
	}

	sensor := &snhmodels.Sensor{
		Name:   req.Name,
		Type:   sensorType,
		RoomID: req.RoomID,
		Unit:   req.Unit,
		Status: snhmodels.SensorStatusActive,
	}

	created, err := c.sensorRepo.Create(ctx, sensor)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (c *SensorController) ListSensors(ctx *gin.Context) {
	if typeFilter := ctx.Query("type"); typeFilter != "" {
		sensorType := snhmodels.SensorType(typeFilter)
		if !sensorType.Valid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid sensor type"})
			return
		}
		sensors, err := c.sensorRepo.ListByType(ctx, sensorType)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, sensors)
		return
	}

	sensors, err := c.sensorRepo.List(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, sensors)
}

func (c *SensorController) ListSensorsByRoom(ctx *gin.Context) {
	roomID, err := strconv.ParseInt(ctx.Param("room_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_id"})
		return
	}

	sensors, err := c.sensorRepo.ListByRoom(ctx, roomID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, sensors)
}

func (c *SensorController) GetSensor(ctx *gin.Context) {
	sensorID, err := strconv.ParseInt(ctx.Param("sensor_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid sensor_id"})
		return
	}

	sensor, err := c.sensorRepo.GetByID(ctx, sensorID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if sensor == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "sensor not found"})
		return
	}

	ctx.JSON(http.StatusOK, sensor)
}

type UpdateSensorRequest struct {
	Name   *string `json:"name,omitempty"`
	Type   *string `json:"type,omitempty"`
	RoomID *int64  `json:"room_id,omitempty"`
	Unit   *string `json:"unit,omitempty"`
	Status *string `json:"status,omitempty"`
}

func (c *SensorController) UpdateSensor(ctx *gin.Context) {
	sensorID, err := strconv.ParseInt(ctx.Param("sensor_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid sensor_id"})
		return
	}

	existing, err := c.sensorRepo.GetByID(ctx, sensorID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "sensor not found"})
		return
	}

	var req UpdateSensorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Type != nil {
		sensorType := snhmodels.SensorType(*req.Type)
		if !sensorType.Valid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid sensor type"})
			return
		}
		existing.Type = sensorType
	}
	if req.RoomID != nil {
		existing.RoomID = req.RoomID
	}
	if req.Unit != nil {
		existing.Unit = *req.Unit
	}
	if req.Status != nil {
		existing.Status = snhmodels.SensorStatus(*req.Status)
	}

	if err := c.sensorRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "sensor not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, existing)
}

type SetSensorValueRequest struct {
	// Pointer so a reading of 0 still passes the required check
	Value      *float64   `json:"value" binding:"required"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
}

// SetSensorValue writes a value through the shared sensor write path, so
// a manual correction projects and archives exactly like a broker
// reading.
func (c *SensorController) SetSensorValue(ctx *gin.Context) {
	sensorID, err := strconv.ParseInt(ctx.Param("sensor_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid sensor_id"})
		return
	}

	var req SetSensorValueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recordedAt := time.Now().UTC()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	change, err := c.writer.SetValue(ctx, sensorID, *req.Value, recordedAt)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if change == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "sensor not found"})
		return
	}

	ctx.JSON(http.StatusOK, change)
}

// GetLatestReading answers from the hot cache when possible and falls
// back to the history table.
func (c *SensorController) GetLatestReading(ctx *gin.Context) {
	sensorID, err := strconv.ParseInt(ctx.Param("sensor_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid sensor_id"})
		return
	}

	if value, ok, err := c.cache.GetLatest(ctx, sensorID); err == nil && ok {
		ctx.JSON(http.StatusOK, gin.H{"sensor_id": sensorID, "value": value, "source": "cache"})
		return
	}

	reading, err := c.readingRepo.LatestBySensor(ctx, sensorID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if reading == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no readings for sensor"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"sensor_id":         reading.SensorID,
		"value":             reading.Value,
		"recorded_at":       reading.RecordedAt,
		"staleness_seconds": int64(time.Since(reading.RecordedAt).Seconds()),
		"source":            "history",
	})
}

func (c *SensorController) ListReadings(ctx *gin.Context) {
	sensorID, err := strconv.ParseInt(ctx.Param("sensor_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid sensor_id"})
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	readings, err := c.readingRepo.ListBySensor(ctx, sensorID, interfaces.SensorReadingQueryParams{
		Limit: limit,
		Page:  page,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, readings)
}

func (c *SensorController) DeleteSensor(ctx *gin.Context) {
	sensorID, err := strconv.ParseInt(ctx.Param("sensor_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid sensor_id"})
		return
	}

	if err := c.sensorRepo.Delete(ctx, sensorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "sensor not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deleted": true})
}
