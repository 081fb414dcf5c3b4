package snhingestor

import (
	"context"
	"errors"
	"testing"
	"time"

	config "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Config"
	logger "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Logger"
	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

// drainCycle runs cycleWorker against a closed queue, so the worker
// drains everything queued and returns without waiting on the timer.
func drainCycle(t *testing.T, ing *Ingestor) {
	t.Helper()
	close(ing.msgCh)
	ing.cycleWorker(context.Background())
}

func newTestIngestor(rawReadings *fakeRawReadingRepo, sensors *fakeSensorRepo, readings *fakeReadingRepo) *Ingestor {
	writer, _ := newTestWriter(sensors, readings)
	dispatcher := NewDispatcher(writer, NewAllOfTypeMapping(sensors), logger.Nop())

	cfg := config.BrokerConfig{
		// Long enough that the timer never fires during a test
		CycleInterval: time.Hour,
	}
	return New(cfg, rawReadings, dispatcher, logger.Nop())
}

func TestCycleProcessesQueuedMessages(t *testing.T) {
	rawReadings := newFakeRawReadingRepo()
	sensors := newFakeSensorRepo(
		&snhmodels.Sensor{ID: 1, Type: snhmodels.SensorTypeTemperature, Value: 0},
	)
	readings := newFakeReadingRepo()
	ing := newTestIngestor(rawReadings, sensors, readings)

	first := testRawReading()
	second := testRawReading()
	second.TempAHT = 22.0
	ing.msgCh <- first
	ing.msgCh <- second

	drainCycle(t, ing)

	if got := rawReadings.count(); got != 2 {
		t.Errorf("archived readings = %d, want 2", got)
	}

	// Messages process in order, so the sensor ends on the second value
	if got := sensors.value(1); got != 22.0 {
		t.Errorf("sensor value = %v, want 22.0", got)
	}
	if count := readings.countFor(1); count != 2 {
		t.Errorf("history rows = %d, want 2", count)
	}
}

func TestArchiveFailureDropsMessage(t *testing.T) {
	rawReadings := newFakeRawReadingRepo()
	rawReadings.appendErr = errors.New("archive unavailable")
	sensors := newFakeSensorRepo(
		&snhmodels.Sensor{ID: 1, Type: snhmodels.SensorTypeTemperature, Value: 0},
	)
	readings := newFakeReadingRepo()
	ing := newTestIngestor(rawReadings, sensors, readings)

	ing.msgCh <- testRawReading()
	drainCycle(t, ing)

	// The message never fans out when it cannot be archived
	if got := sensors.value(1); got != 0 {
		t.Errorf("sensor value = %v, want 0", got)
	}
}

func TestMessageAfterStopIsDiscarded(t *testing.T) {
	rawReadings := newFakeRawReadingRepo()
	sensors := newFakeSensorRepo(
		&snhmodels.Sensor{ID: 1, Type: snhmodels.SensorTypeTemperature, Value: 0},
	)
	readings := newFakeReadingRepo()
	ing := newTestIngestor(rawReadings, sensors, readings)

	ing.Stop()

	// A handler still in flight after Stop must not panic on the closed
	// queue; the reading is simply dropped.
	ing.enqueue(testRawReading())

	if got := rawReadings.count(); got != 0 {
		t.Errorf("archived readings = %d, want 0", got)
	}

	// Stop is idempotent
	ing.Stop()
}

func TestFullQueueDropsInsteadOfBlocking(t *testing.T) {
	rawReadings := newFakeRawReadingRepo()
	sensors := newFakeSensorRepo()
	readings := newFakeReadingRepo()
	ing := newTestIngestor(rawReadings, sensors, readings)
	ing.msgCh = make(chan *snhmodels.RawReading, 1)

	done := make(chan struct{})
	go func() {
		ing.enqueue(testRawReading())
		ing.enqueue(testRawReading())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("enqueue blocked on a full queue")
	}

	if got := len(ing.msgCh); got != 1 {
		t.Errorf("queued messages = %d, want 1", got)
	}
}

func TestCancelFlushesQueuedMessages(t *testing.T) {
	rawReadings := newFakeRawReadingRepo()
	sensors := newFakeSensorRepo(
		&snhmodels.Sensor{ID: 1, Type: snhmodels.SensorTypeTemperature, Value: 0},
	)
	readings := newFakeReadingRepo()
	ing := newTestIngestor(rawReadings, sensors, readings)

	ing.msgCh <- testRawReading()

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		ing.cycleWorker(ctx)
		close(done)
	}()

	// Give the worker a moment to pull the message off the queue, then
	// cancel: the final flush must still process it.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cycle worker did not stop after cancellation")
	}

	if got := rawReadings.count(); got != 1 {
		t.Errorf("archived readings = %d, want 1", got)
	}
	if got := sensors.value(1); got != 21.5 {
		t.Errorf("sensor value = %v, want 21.5", got)
	}
}
