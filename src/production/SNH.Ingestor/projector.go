package snhingestor

import (
	"context"

	logger "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Logger"
	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
	interfaces "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Repository/Interfaces"
)

// RoomProjector copies a temperature sensor's value into the owning
// room's denormalized current_temperature. It consumes value-change
// events, so ingestion-driven and administrative value writes project
// through the same path.
type RoomProjector struct {
	sensors interfaces.SensorRepository
	rooms   interfaces.RoomRepository
	logger  *logger.Logger
}

// NewRoomProjector creates a room projector
func NewRoomProjector(sensors interfaces.SensorRepository, rooms interfaces.RoomRepository, log *logger.Logger) *RoomProjector {
	return &RoomProjector{
		sensors: sensors,
		rooms:   rooms,
		logger:  log,
	}
}

// Register subscribes the projector to value-change events
func (p *RoomProjector) Register(bus *Bus) {
	bus.Subscribe(p.OnSensorValueChanged)
}

// OnSensorValueChanged projects a temperature change onto the owning
// room. The sensor row is re-read here rather than trusted from the
// event: a concurrent administrative edit may have moved the sensor to
// another room or changed its value since the event was published, and
// the projection must land on the row's current state.
func (p *RoomProjector) OnSensorValueChanged(ctx context.Context, change snhmodels.SensorValueChange) {
	if change.Type != snhmodels.SensorTypeTemperature {
		return
	}

	sensor, err := p.sensors.GetByID(ctx, change.SensorID)
	if err != nil {
		p.logger.Logger.Warn().Err(err).Int64("sensor_id", change.SensorID).Msg("Projection skipped, sensor re-read failed")
		return
	}
	if sensor == nil || sensor.RoomID == nil || sensor.Type != snhmodels.SensorTypeTemperature {
		return
	}

	if err := p.rooms.SetCurrentTemperature(ctx, *sensor.RoomID, sensor.Value); err != nil {
		p.logger.Logger.Error().Err(err).
			Int64("sensor_id", sensor.ID).
			Int64("room_id", *sensor.RoomID).
			Msg("Failed to project temperature onto room")
	}
}
