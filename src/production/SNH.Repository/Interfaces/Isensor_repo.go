package interfaces

import (
	"context"
	"time"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

type SensorRepository interface {
	// Create sensor
	Create(ctx context.Context, sensor *snhmodels.Sensor) (*snhmodels.Sensor, error)

	// Read sensors
	GetByID(ctx context.Context, sensorID int64) (*snhmodels.Sensor, error)
	List(ctx context.Context) ([]snhmodels.Sensor, error)
	ListByType(ctx context.Context, sensorType snhmodels.SensorType) ([]snhmodels.Sensor, error)
	ListByRoom(ctx context.Context, roomID int64) ([]snhmodels.Sensor, error)

	// Update administrative fields (name, type, room assignment, unit, status)
	Update(ctx context.Context, sensor *snhmodels.Sensor) error

	// SetValue atomically writes the cached value and last_reading_at of a
	// single sensor row and returns the previous stored value alongside the
	// row's current type and room assignment. It is the only way the value
	// column is written.
	SetValue(ctx context.Context, sensorID int64, value float64, recordedAt time.Time) (*snhmodels.SensorValueChange, error)

	// Delete sensor
	Delete(ctx context.Context, sensorID int64) error
}
