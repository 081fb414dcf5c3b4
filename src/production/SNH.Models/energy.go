package snhmodels

import "time"

// EnergyReading is one consumption sample for a room
type EnergyReading struct {
	ID             int64     `json:"id" db:"id"`
	RoomID         int64     `json:"room_id" db:"room_id"`
	ConsumptionKWh float64   `json:"consumption_kwh" db:"consumption_kwh"`
	RecordedAt     time.Time `json:"recorded_at" db:"recorded_at"`
}

// EnergyStatistics aggregates consumption over a period
type EnergyStatistics struct {
	TotalKWh     float64 `json:"total_kwh"`
	AverageKWh   float64 `json:"average_kwh"`
	SampleCount  int64   `json:"sample_count"`
	RoomsCovered int64   `json:"rooms_covered"`
}
