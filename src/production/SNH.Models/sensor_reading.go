package snhmodels

import "time"

// SensorReading is one historical value sample for a sensor. Rows are
// append-only; the pipeline never mutates or deletes them.
type SensorReading struct {
	ID         int64     `json:"id" db:"id"`
	SensorID   int64     `json:"sensor_id" db:"sensor_id"`
	Value      float64   `json:"value" db:"value"`
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
}
