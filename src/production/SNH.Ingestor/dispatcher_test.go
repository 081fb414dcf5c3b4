package snhingestor

import (
	"context"
	"errors"
	"testing"
	"time"

	logger "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Logger"
	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

func testRawReading() *snhmodels.RawReading {
	return &snhmodels.RawReading{
		TempAHT:    21.5,
		HumAHT:     48.2,
		TempBMP:    21.8,
		PressBMP:   1013.25,
		Topic:      "esp32/sensor",
		ReceivedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
	}
}

func newTestDispatcher(sensors *fakeSensorRepo, readings *fakeReadingRepo) (*Dispatcher, *Bus) {
	writer, bus := newTestWriter(sensors, readings)
	mapping := NewAllOfTypeMapping(sensors)
	return NewDispatcher(writer, mapping, logger.Nop()), bus
}

func TestDispatcherFansOutByType(t *testing.T) {
	sensors := newFakeSensorRepo(
		&snhmodels.Sensor{ID: 1, Type: snhmodels.SensorTypeTemperature, Value: 0},
		&snhmodels.Sensor{ID: 2, Type: snhmodels.SensorTypeTemperature, Value: 0},
		&snhmodels.Sensor{ID: 3, Type: snhmodels.SensorTypeHumidity, Value: 0},
		&snhmodels.Sensor{ID: 4, Type: snhmodels.SensorTypeLight, Value: 5},
	)
	readings := newFakeReadingRepo()
	dispatcher, _ := newTestDispatcher(sensors, readings)

	dispatcher.OnRawReading(context.Background(), testRawReading())

	// Every temperature sensor gets temp_aht
	if got := sensors.value(1); got != 21.5 {
		t.Errorf("sensor 1 value = %v, want 21.5", got)
	}
	if got := sensors.value(2); got != 21.5 {
		t.Errorf("sensor 2 value = %v, want 21.5", got)
	}

	// Humidity sensors get hum_aht
	if got := sensors.value(3); got != 48.2 {
		t.Errorf("sensor 3 value = %v, want 48.2", got)
	}

	// Unmapped types are untouched
	if got := sensors.value(4); got != 5 {
		t.Errorf("sensor 4 value = %v, want 5", got)
	}
}

func TestDispatcherRedeliveryIsIdempotent(t *testing.T) {
	sensors := newFakeSensorRepo(
		&snhmodels.Sensor{ID: 1, Type: snhmodels.SensorTypeTemperature, Value: 0},
	)
	readings := newFakeReadingRepo()
	dispatcher, bus := newTestDispatcher(sensors, readings)

	events := 0
	bus.Subscribe(func(context.Context, snhmodels.SensorValueChange) { events++ })

	raw := testRawReading()
	dispatcher.OnRawReading(context.Background(), raw)
	dispatcher.OnRawReading(context.Background(), raw)

	if got := sensors.value(1); got != 21.5 {
		t.Errorf("sensor value = %v, want 21.5", got)
	}

	// The redelivered message writes the same value, so only the first
	// pass publishes a change event.
	if events != 1 {
		t.Errorf("published events = %d, want 1", events)
	}
}

func TestDispatcherSensorFailureIsIsolated(t *testing.T) {
	sensors := newFakeSensorRepo(
		&snhmodels.Sensor{ID: 1, Type: snhmodels.SensorTypeTemperature, Value: 0},
		&snhmodels.Sensor{ID: 2, Type: snhmodels.SensorTypeTemperature, Value: 0},
	)
	sensors.failSetValue[1] = errors.New("connection reset")
	readings := newFakeReadingRepo()
	dispatcher, _ := newTestDispatcher(sensors, readings)

	dispatcher.OnRawReading(context.Background(), testRawReading())

	if got := sensors.value(1); got != 0 {
		t.Errorf("failed sensor value = %v, want 0", got)
	}
	if got := sensors.value(2); got != 21.5 {
		t.Errorf("healthy sensor value = %v, want 21.5", got)
	}
}

func TestDispatcherNoTargets(t *testing.T) {
	// No sensors at all: the message fans out to nothing and that is fine
	sensors := newFakeSensorRepo()
	readings := newFakeReadingRepo()
	dispatcher, bus := newTestDispatcher(sensors, readings)

	events := 0
	bus.Subscribe(func(context.Context, snhmodels.SensorValueChange) { events++ })

	dispatcher.OnRawReading(context.Background(), testRawReading())

	if events != 0 {
		t.Errorf("published events = %d, want 0", events)
	}
}

func TestDispatcherProjectsRoomTemperature(t *testing.T) {
	sensors := newFakeSensorRepo(
		&snhmodels.Sensor{ID: 1, Type: snhmodels.SensorTypeTemperature, RoomID: int64Ptr(101), Value: 0},
		&snhmodels.Sensor{ID: 2, Type: snhmodels.SensorTypeHumidity, RoomID: int64Ptr(101), Value: 0},
	)
	rooms := newFakeRoomRepo(&snhmodels.Room{ID: 101, Number: "101"})
	readings := newFakeReadingRepo()

	writer, bus := newTestWriter(sensors, readings)
	NewRoomProjector(sensors, rooms, logger.Nop()).Register(bus)
	dispatcher := NewDispatcher(writer, NewAllOfTypeMapping(sensors), logger.Nop())

	dispatcher.OnRawReading(context.Background(), testRawReading())

	temp := rooms.currentTemperature(101)
	if temp == nil || *temp != 21.5 {
		t.Fatalf("room temperature = %v, want 21.5", temp)
	}

	// Only the temperature sensor projects; the humidity write must not
	if len(rooms.projections) != 1 {
		t.Errorf("projections = %d, want 1", len(rooms.projections))
	}
}
