package interfaces

import (
	"context"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

type RoomRepository interface {
	// Create room
	Create(ctx context.Context, room *snhmodels.Room) (*snhmodels.Room, error)

	// Read rooms
	GetByID(ctx context.Context, roomID int64) (*snhmodels.Room, error)
	GetByNumber(ctx context.Context, number string) (*snhmodels.Room, error)
	List(ctx context.Context) ([]snhmodels.Room, error)
	ListByFloor(ctx context.Context, floorID int64) ([]snhmodels.Room, error)

	// Update administrative fields (number, floor, type, status, target
	// temperature, client). Never writes current_temperature.
	Update(ctx context.Context, room *snhmodels.Room) error

	// Targeted single-field updates
	SetMode(ctx context.Context, roomID int64, mode snhmodels.RoomMode) error
	SetEquipment(ctx context.Context, roomID int64, equipment string, state bool) error

	// SetCurrentTemperature atomically writes the denormalized temperature
	// projection of a single room row. Only the room projector calls it.
	SetCurrentTemperature(ctx context.Context, roomID int64, temperature float64) error

	// Delete room
	Delete(ctx context.Context, roomID int64) error
}
