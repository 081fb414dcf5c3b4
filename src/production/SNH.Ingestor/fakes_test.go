package snhingestor

import (
	"context"
	"fmt"
	"sync"
	"time"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
	interfaces "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Repository/Interfaces"
)

// fakeSensorRepo is an in-memory SensorRepository for pipeline tests
type fakeSensorRepo struct {
	mu      sync.Mutex
	sensors map[int64]*snhmodels.Sensor
	nextID  int64

	// failSetValue makes SetValue fail for specific sensor ids
	failSetValue map[int64]error
}

func newFakeSensorRepo(sensors ...*snhmodels.Sensor) *fakeSensorRepo {
	repo := &fakeSensorRepo{
		sensors:      make(map[int64]*snhmodels.Sensor),
		failSetValue: make(map[int64]error),
		nextID:       1,
	}
	for _, sensor := range sensors {
		if sensor.ID >= repo.nextID {
			repo.nextID = sensor.ID + 1
		}
		copied := *sensor
		repo.sensors[sensor.ID] = &copied
	}
	return repo
}

func (r *fakeSensorRepo) Create(_ context.Context, sensor *snhmodels.Sensor) (*snhmodels.Sensor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sensor.ID = r.nextID
	r.nextID++
	copied := *sensor
	r.sensors[sensor.ID] = &copied
	return sensor, nil
}

func (r *fakeSensorRepo) GetByID(_ context.Context, sensorID int64) (*snhmodels.Sensor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sensor, ok := r.sensors[sensorID]
	if !ok {
		return nil, nil
	}
	copied := *sensor
	return &copied, nil
}

func (r *fakeSensorRepo) List(_ context.Context) ([]snhmodels.Sensor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []snhmodels.Sensor
	for _, sensor := range r.sensors {
		out = append(out, *sensor)
	}
	return out, nil
}

func (r *fakeSensorRepo) ListByType(_ context.Context, sensorType snhmodels.SensorType) ([]snhmodels.Sensor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []snhmodels.Sensor
	for id := int64(0); id < r.nextID; id++ {
		if sensor, ok := r.sensors[id]; ok && sensor.Type == sensorType {
			out = append(out, *sensor)
		}
	}
	return out, nil
}

func (r *fakeSensorRepo) ListByRoom(_ context.Context, roomID int64) ([]snhmodels.Sensor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []snhmodels.Sensor
	for _, sensor := range r.sensors {
		if sensor.RoomID != nil && *sensor.RoomID == roomID {
			out = append(out, *sensor)
		}
	}
	return out, nil
}

func (r *fakeSensorRepo) Update(_ context.Context, sensor *snhmodels.Sensor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sensors[sensor.ID]; !ok {
		return fmt.Errorf("sensor %d not found", sensor.ID)
	}
	copied := *sensor
	r.sensors[sensor.ID] = &copied
	return nil
}

func (r *fakeSensorRepo) SetValue(_ context.Context, sensorID int64, value float64, recordedAt time.Time) (*snhmodels.SensorValueChange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err, ok := r.failSetValue[sensorID]; ok {
		return nil, err
	}

	sensor, ok := r.sensors[sensorID]
	if !ok {
		return nil, nil
	}

	oldValue := sensor.Value
	sensor.Value = value
	sensor.LastReadingAt = &recordedAt

	return &snhmodels.SensorValueChange{
		SensorID:   sensorID,
		Type:       sensor.Type,
		RoomID:     sensor.RoomID,
		OldValue:   oldValue,
		NewValue:   value,
		RecordedAt: recordedAt,
	}, nil
}

func (r *fakeSensorRepo) Delete(_ context.Context, sensorID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sensors, sensorID)
	return nil
}

// value reads a sensor's stored value directly, for assertions
func (r *fakeSensorRepo) value(sensorID int64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sensors[sensorID].Value
}

// fakeReadingRepo is an in-memory SensorReadingRepository
type fakeReadingRepo struct {
	mu        sync.Mutex
	readings  []snhmodels.SensorReading
	appendErr error
}

func newFakeReadingRepo() *fakeReadingRepo {
	return &fakeReadingRepo{}
}

func (r *fakeReadingRepo) Append(_ context.Context, reading *snhmodels.SensorReading) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	reading.ID = int64(len(r.readings) + 1)
	r.readings = append(r.readings, *reading)
	return nil
}

func (r *fakeReadingRepo) ListBySensor(_ context.Context, sensorID int64, _ interfaces.SensorReadingQueryParams) ([]snhmodels.SensorReading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []snhmodels.SensorReading
	for i := len(r.readings) - 1; i >= 0; i-- {
		if r.readings[i].SensorID == sensorID {
			out = append(out, r.readings[i])
		}
	}
	return out, nil
}

func (r *fakeReadingRepo) LatestBySensor(_ context.Context, sensorID int64) (*snhmodels.SensorReading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.readings) - 1; i >= 0; i-- {
		if r.readings[i].SensorID == sensorID {
			copied := r.readings[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeReadingRepo) countFor(sensorID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, reading := range r.readings {
		if reading.SensorID == sensorID {
			count++
		}
	}
	return count
}

// fakeRoomRepo is an in-memory RoomRepository that records temperature
// projections
type fakeRoomRepo struct {
	mu    sync.Mutex
	rooms map[int64]*snhmodels.Room

	// projections records SetCurrentTemperature calls in order
	projections []roomProjection
}

type roomProjection struct {
	roomID      int64
	temperature float64
}

func newFakeRoomRepo(rooms ...*snhmodels.Room) *fakeRoomRepo {
	repo := &fakeRoomRepo{rooms: make(map[int64]*snhmodels.Room)}
	for _, room := range rooms {
		copied := *room
		repo.rooms[room.ID] = &copied
	}
	return repo
}

func (r *fakeRoomRepo) Create(_ context.Context, room *snhmodels.Room) (*snhmodels.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *room
	r.rooms[room.ID] = &copied
	return room, nil
}

func (r *fakeRoomRepo) GetByID(_ context.Context, roomID int64) (*snhmodels.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return nil, nil
	}
	copied := *room
	return &copied, nil
}

func (r *fakeRoomRepo) GetByNumber(_ context.Context, number string) (*snhmodels.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, room := range r.rooms {
		if room.Number == number {
			copied := *room
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeRoomRepo) List(_ context.Context) ([]snhmodels.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []snhmodels.Room
	for _, room := range r.rooms {
		out = append(out, *room)
	}
	return out, nil
}

func (r *fakeRoomRepo) ListByFloor(_ context.Context, floorID int64) ([]snhmodels.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []snhmodels.Room
	for _, room := range r.rooms {
		if room.FloorID != nil && *room.FloorID == floorID {
			out = append(out, *room)
		}
	}
	return out, nil
}

func (r *fakeRoomRepo) Update(_ context.Context, room *snhmodels.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.rooms[room.ID]
	if !ok {
		return fmt.Errorf("room %d not found", room.ID)
	}
	temperature := existing.CurrentTemperature
	copied := *room
	copied.CurrentTemperature = temperature
	r.rooms[room.ID] = &copied
	return nil
}

func (r *fakeRoomRepo) SetMode(_ context.Context, roomID int64, mode snhmodels.RoomMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return fmt.Errorf("room %d not found", roomID)
	}
	room.Mode = mode
	return nil
}

func (r *fakeRoomRepo) SetEquipment(_ context.Context, roomID int64, equipment string, state bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return fmt.Errorf("room %d not found", roomID)
	}
	switch equipment {
	case "light":
		room.LightStatus = state
	case "climatization":
		room.ClimatizationStatus = state
	default:
		return fmt.Errorf("unknown equipment %q", equipment)
	}
	return nil
}

func (r *fakeRoomRepo) SetCurrentTemperature(_ context.Context, roomID int64, temperature float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return fmt.Errorf("room %d not found", roomID)
	}
	room.CurrentTemperature = &temperature
	r.projections = append(r.projections, roomProjection{roomID: roomID, temperature: temperature})
	return nil
}

func (r *fakeRoomRepo) Delete(_ context.Context, roomID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, roomID)
	return nil
}

func (r *fakeRoomRepo) currentTemperature(roomID int64) *float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rooms[roomID].CurrentTemperature
}

// fakeRawReadingRepo is an in-memory RawReadingRepository
type fakeRawReadingRepo struct {
	mu        sync.Mutex
	readings  []snhmodels.RawReading
	appendErr error
}

func newFakeRawReadingRepo() *fakeRawReadingRepo {
	return &fakeRawReadingRepo{}
}

func (r *fakeRawReadingRepo) Append(_ context.Context, reading *snhmodels.RawReading) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return "", r.appendErr
	}
	r.readings = append(r.readings, *reading)
	return fmt.Sprintf("raw-%d", len(r.readings)), nil
}

func (r *fakeRawReadingRepo) Latest(_ context.Context, limit int) ([]snhmodels.RawReading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []snhmodels.RawReading
	for i := len(r.readings) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.readings[i])
	}
	return out, nil
}

func (r *fakeRawReadingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.readings)
}
