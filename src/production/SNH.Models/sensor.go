package snhmodels

import "time"

// SensorType is the kind of quantity a sensor measures
type SensorType string

const (
	SensorTypeTemperature SensorType = "temperature"
	SensorTypeHumidity    SensorType = "humidity"
	SensorTypeLight       SensorType = "light"
	SensorTypeMotion      SensorType = "motion"
	SensorTypeEnergy      SensorType = "energy"
)

// Valid reports whether t is one of the known sensor types
func (t SensorType) Valid() bool {
	switch t {
	case SensorTypeTemperature, SensorTypeHumidity, SensorTypeLight, SensorTypeMotion, SensorTypeEnergy:
		return true
	}
	return false
}

// SensorStatus is the operational status of a sensor
type SensorStatus string

const (
	SensorStatusActive   SensorStatus = "active"
	SensorStatusInactive SensorStatus = "inactive"
	SensorStatusError    SensorStatus = "error"
)

// Valid reports whether s is one of the known sensor statuses
func (s SensorStatus) Valid() bool {
	switch s {
	case SensorStatusActive, SensorStatusInactive, SensorStatusError:
		return true
	}
	return false
}

// Sensor is a logical device with a cached current value. The value and
// last_reading_at columns are owned by the ingestion pipeline; everything
// else is administrative.
type Sensor struct {
	ID            int64        `json:"id" db:"id"`
	Name          string       `json:"name" db:"name"`
	Type          SensorType   `json:"type" db:"type"`
	RoomID        *int64       `json:"room_id,omitempty" db:"room_id"`
	Value         float64      `json:"value" db:"value"`
	Unit          string       `json:"unit" db:"unit"`
	Status        SensorStatus `json:"status" db:"status"`
	LastReadingAt *time.Time   `json:"last_reading_at,omitempty" db:"last_reading_at"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}

// SensorValueChange is the result of an atomic sensor value write: the
// previous and new stored values plus the row state needed to decide
// whether and where to project.
type SensorValueChange struct {
	SensorID   int64      `json:"sensor_id"`
	Type       SensorType `json:"type"`
	RoomID     *int64     `json:"room_id,omitempty"`
	OldValue   float64    `json:"old_value"`
	NewValue   float64    `json:"new_value"`
	RecordedAt time.Time  `json:"recorded_at"`
}

// Changed reports whether the stored value actually moved
func (c SensorValueChange) Changed() bool {
	return c.OldValue != c.NewValue
}
