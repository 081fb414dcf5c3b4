package snhingestor

import (
	"context"
	"fmt"
	"time"

	logger "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Logger"
	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
	interfaces "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Repository/Interfaces"
)

// SensorWriter is the single write path for sensor values. Both the
// fan-out dispatcher and the administrative API go through it, so every
// value write gets the same history row, hot-cache update and
// value-change event regardless of where it came from.
type SensorWriter struct {
	sensors  interfaces.SensorRepository
	readings interfaces.SensorReadingRepository
	bus      *Bus
	cache    *HotCache
	logger   *logger.Logger
}

// NewSensorWriter creates a sensor writer. cache may be nil.
func NewSensorWriter(sensors interfaces.SensorRepository, readings interfaces.SensorReadingRepository, bus *Bus, cache *HotCache, log *logger.Logger) *SensorWriter {
	return &SensorWriter{
		sensors:  sensors,
		readings: readings,
		bus:      bus,
		cache:    cache,
		logger:   log,
	}
}

// SetValue atomically writes a sensor's cached value, appends one history
// row, refreshes the hot cache, and publishes a value-change event when
// the stored value actually moved. Returns (nil, nil) when the sensor no
// longer exists.
func (w *SensorWriter) SetValue(ctx context.Context, sensorID int64, value float64, recordedAt time.Time) (*snhmodels.SensorValueChange, error) {
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}

	change, err := w.sensors.SetValue(ctx, sensorID, value, recordedAt)
	if err != nil {
		return nil, fmt.Errorf("sensor value write failed: %w", err)
	}
	if change == nil {
		return nil, nil
	}

	reading := &snhmodels.SensorReading{
		SensorID:   sensorID,
		Value:      value,
		RecordedAt: recordedAt,
	}
	if err := w.readings.Append(ctx, reading); err != nil {
		// The cached value landed; a missing history row self-corrects on
		// the next update.
		w.logger.Logger.Error().Err(err).Int64("sensor_id", sensorID).Msg("Failed to append sensor reading history")
	}

	if err := w.cache.SetLatest(ctx, sensorID, value); err != nil {
		w.logger.Logger.Warn().Err(err).Int64("sensor_id", sensorID).Msg("Failed to refresh hot cache")
	}

	if change.Changed() {
		w.bus.Publish(ctx, *change)
	}

	return change, nil
}
