package snhingestor

import (
	"context"
	"testing"
	"time"

	logger "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Logger"
	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

func tempChange(sensorID int64, roomID *int64, oldValue, newValue float64) snhmodels.SensorValueChange {
	return snhmodels.SensorValueChange{
		SensorID:   sensorID,
		Type:       snhmodels.SensorTypeTemperature,
		RoomID:     roomID,
		OldValue:   oldValue,
		NewValue:   newValue,
		RecordedAt: time.Now().UTC(),
	}
}

func TestProjectorWritesRoomTemperature(t *testing.T) {
	sensors := newFakeSensorRepo(&snhmodels.Sensor{
		ID:     1,
		Type:   snhmodels.SensorTypeTemperature,
		RoomID: int64Ptr(101),
		Value:  21.5,
	})
	rooms := newFakeRoomRepo(&snhmodels.Room{ID: 101, Number: "101"})
	projector := NewRoomProjector(sensors, rooms, logger.Nop())

	projector.OnSensorValueChanged(context.Background(), tempChange(1, int64Ptr(101), 20.0, 21.5))

	temp := rooms.currentTemperature(101)
	if temp == nil || *temp != 21.5 {
		t.Fatalf("room temperature = %v, want 21.5", temp)
	}
}

func TestProjectorIgnoresNonTemperature(t *testing.T) {
	sensors := newFakeSensorRepo(&snhmodels.Sensor{
		ID:     1,
		Type:   snhmodels.SensorTypeHumidity,
		RoomID: int64Ptr(101),
		Value:  48.2,
	})
	rooms := newFakeRoomRepo(&snhmodels.Room{ID: 101, Number: "101"})
	projector := NewRoomProjector(sensors, rooms, logger.Nop())

	change := tempChange(1, int64Ptr(101), 40.0, 48.2)
	change.Type = snhmodels.SensorTypeHumidity
	projector.OnSensorValueChanged(context.Background(), change)

	if len(rooms.projections) != 0 {
		t.Errorf("projections = %d, want 0", len(rooms.projections))
	}
}

func TestProjectorSkipsUnassignedSensor(t *testing.T) {
	sensors := newFakeSensorRepo(&snhmodels.Sensor{
		ID:    1,
		Type:  snhmodels.SensorTypeTemperature,
		Value: 21.5,
	})
	rooms := newFakeRoomRepo(&snhmodels.Room{ID: 101, Number: "101"})
	projector := NewRoomProjector(sensors, rooms, logger.Nop())

	projector.OnSensorValueChanged(context.Background(), tempChange(1, nil, 20.0, 21.5))

	if len(rooms.projections) != 0 {
		t.Errorf("projections = %d, want 0", len(rooms.projections))
	}
}

func TestProjectorUsesCurrentAssignment(t *testing.T) {
	// The sensor moved to room 202 after the event was published. The
	// projection must follow the row's current assignment, not the event.
	sensors := newFakeSensorRepo(&snhmodels.Sensor{
		ID:     1,
		Type:   snhmodels.SensorTypeTemperature,
		RoomID: int64Ptr(202),
		Value:  21.5,
	})
	rooms := newFakeRoomRepo(
		&snhmodels.Room{ID: 101, Number: "101"},
		&snhmodels.Room{ID: 202, Number: "202"},
	)
	projector := NewRoomProjector(sensors, rooms, logger.Nop())

	projector.OnSensorValueChanged(context.Background(), tempChange(1, int64Ptr(101), 20.0, 21.5))

	if temp := rooms.currentTemperature(101); temp != nil {
		t.Errorf("stale room temperature = %v, want nil", temp)
	}
	temp := rooms.currentTemperature(202)
	if temp == nil || *temp != 21.5 {
		t.Fatalf("current room temperature = %v, want 21.5", temp)
	}
}

func TestProjectorSkipsDeletedSensor(t *testing.T) {
	sensors := newFakeSensorRepo()
	rooms := newFakeRoomRepo(&snhmodels.Room{ID: 101, Number: "101"})
	projector := NewRoomProjector(sensors, rooms, logger.Nop())

	projector.OnSensorValueChanged(context.Background(), tempChange(1, int64Ptr(101), 20.0, 21.5))

	if len(rooms.projections) != 0 {
		t.Errorf("projections = %d, want 0", len(rooms.projections))
	}
}

func TestProjectorSkipsRetypedSensor(t *testing.T) {
	// Between the event and the projection the sensor was retyped; the
	// re-read sees a humidity sensor and must not project.
	sensors := newFakeSensorRepo(&snhmodels.Sensor{
		ID:     1,
		Type:   snhmodels.SensorTypeHumidity,
		RoomID: int64Ptr(101),
		Value:  21.5,
	})
	rooms := newFakeRoomRepo(&snhmodels.Room{ID: 101, Number: "101"})
	projector := NewRoomProjector(sensors, rooms, logger.Nop())

	projector.OnSensorValueChanged(context.Background(), tempChange(1, int64Ptr(101), 20.0, 21.5))

	if len(rooms.projections) != 0 {
		t.Errorf("projections = %d, want 0", len(rooms.projections))
	}
}
