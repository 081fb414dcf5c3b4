package snhingestor

import (
	"context"
	"testing"
	"time"

	logger "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Logger"
	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

func int64Ptr(v int64) *int64 { return &v }

func newTestWriter(sensors *fakeSensorRepo, readings *fakeReadingRepo) (*SensorWriter, *Bus) {
	bus := NewBus()
	// nil redis client: the hot cache is a no-op
	cache := NewHotCache(nil, time.Hour)
	return NewSensorWriter(sensors, readings, bus, cache, logger.Nop()), bus
}

func TestSensorWriterAppendsHistoryAndPublishes(t *testing.T) {
	sensors := newFakeSensorRepo(&snhmodels.Sensor{
		ID:     1,
		Type:   snhmodels.SensorTypeTemperature,
		RoomID: int64Ptr(101),
		Value:  20.0,
	})
	readings := newFakeReadingRepo()
	writer, bus := newTestWriter(sensors, readings)

	var published []snhmodels.SensorValueChange
	bus.Subscribe(func(_ context.Context, change snhmodels.SensorValueChange) {
		published = append(published, change)
	})

	recordedAt := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	change, err := writer.SetValue(context.Background(), 1, 21.5, recordedAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if change == nil {
		t.Fatal("expected a change result")
	}
	if change.OldValue != 20.0 || change.NewValue != 21.5 {
		t.Errorf("change = %+v, want old 20.0 new 21.5", change)
	}

	if got := sensors.value(1); got != 21.5 {
		t.Errorf("stored value = %v, want 21.5", got)
	}
	if count := readings.countFor(1); count != 1 {
		t.Errorf("history rows = %d, want 1", count)
	}
	if len(published) != 1 {
		t.Fatalf("published events = %d, want 1", len(published))
	}
	if published[0].SensorID != 1 || !published[0].RecordedAt.Equal(recordedAt) {
		t.Errorf("event = %+v", published[0])
	}
}

func TestSensorWriterNoEventWhenValueUnchanged(t *testing.T) {
	sensors := newFakeSensorRepo(&snhmodels.Sensor{
		ID:    1,
		Type:  snhmodels.SensorTypeTemperature,
		Value: 21.5,
	})
	readings := newFakeReadingRepo()
	writer, bus := newTestWriter(sensors, readings)

	events := 0
	bus.Subscribe(func(context.Context, snhmodels.SensorValueChange) { events++ })

	change, err := writer.SetValue(context.Background(), 1, 21.5, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if change == nil {
		t.Fatal("expected a change result")
	}
	if change.Changed() {
		t.Error("identical value should not report a change")
	}

	// History still gets a row, the event does not fire
	if count := readings.countFor(1); count != 1 {
		t.Errorf("history rows = %d, want 1", count)
	}
	if events != 0 {
		t.Errorf("published events = %d, want 0", events)
	}
}

func TestSensorWriterUnknownSensor(t *testing.T) {
	writer, bus := newTestWriter(newFakeSensorRepo(), newFakeReadingRepo())

	events := 0
	bus.Subscribe(func(context.Context, snhmodels.SensorValueChange) { events++ })

	change, err := writer.SetValue(context.Background(), 42, 21.5, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if change != nil {
		t.Errorf("expected nil change for unknown sensor, got %+v", change)
	}
	if events != 0 {
		t.Errorf("published events = %d, want 0", events)
	}
}

func TestSensorWriterHistoryFailureDoesNotBlockValue(t *testing.T) {
	sensors := newFakeSensorRepo(&snhmodels.Sensor{
		ID:    1,
		Type:  snhmodels.SensorTypeTemperature,
		Value: 20.0,
	})
	readings := newFakeReadingRepo()
	readings.appendErr = context.DeadlineExceeded
	writer, _ := newTestWriter(sensors, readings)

	change, err := writer.SetValue(context.Background(), 1, 21.5, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if change == nil {
		t.Fatal("expected a change result")
	}
	if got := sensors.value(1); got != 21.5 {
		t.Errorf("stored value = %v, want 21.5", got)
	}
}
