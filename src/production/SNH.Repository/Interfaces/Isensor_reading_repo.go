package interfaces

import (
	"context"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

// SensorReadingQueryParams represents parameters for history queries
type SensorReadingQueryParams struct {
	Limit int
	Page  int
}

// SensorReadingRepository is the append-only per-sensor value history
type SensorReadingRepository interface {
	// Append stores one history row
	Append(ctx context.Context, reading *snhmodels.SensorReading) error

	// ListBySensor returns history rows for a sensor, newest first
	ListBySensor(ctx context.Context, sensorID int64, params SensorReadingQueryParams) ([]snhmodels.SensorReading, error)

	// LatestBySensor returns the newest history row for a sensor, or nil
	LatestBySensor(ctx context.Context, sensorID int64) (*snhmodels.SensorReading, error)
}
