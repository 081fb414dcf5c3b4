package snhmodels

import "time"

// RoomStatus is the occupancy status of a room
type RoomStatus string

const (
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusVacant      RoomStatus = "vacant"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

// Valid reports whether s is one of the known room statuses
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusOccupied, RoomStatusVacant, RoomStatusMaintenance:
		return true
	}
	return false
}

// RoomMode is the energy mode of a room
type RoomMode string

const (
	RoomModeEco         RoomMode = "eco"
	RoomModeComfort     RoomMode = "comfort"
	RoomModeNight       RoomMode = "night"
	RoomModeMaintenance RoomMode = "maintenance"
)

// Valid reports whether m is one of the known room modes
func (m RoomMode) Valid() bool {
	switch m {
	case RoomModeEco, RoomModeComfort, RoomModeNight, RoomModeMaintenance:
		return true
	}
	return false
}

// Room is one physical unit. CurrentTemperature is derived state: the
// source of truth is the room's temperature sensor(s), and the column is
// written only by the room projector.
type Room struct {
	ID                  int64      `json:"id" db:"id"`
	Number              string     `json:"number" db:"number"`
	FloorID             *int64     `json:"floor_id,omitempty" db:"floor_id"`
	Type                string     `json:"type" db:"type"`
	Status              RoomStatus `json:"status" db:"status"`
	CurrentTemperature  *float64   `json:"current_temperature,omitempty" db:"current_temperature"`
	TargetTemperature   *float64   `json:"target_temperature,omitempty" db:"target_temperature"`
	LightStatus         bool       `json:"light_status" db:"light_status"`
	ClimatizationStatus bool       `json:"climatization_status" db:"climatization_status"`
	Mode                RoomMode   `json:"mode" db:"mode"`
	ClientID            *string    `json:"client_id,omitempty" db:"client_id"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}
