package controllers

import (
	"context"
	"database/sql"
	"time"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
	interfaces "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Repository/Interfaces"
)

// fakeSensorRepo is an in-memory SensorRepository for handler tests
type fakeSensorRepo struct {
	sensors map[int64]*snhmodels.Sensor
}

func newFakeSensorRepo(sensors ...*snhmodels.Sensor) *fakeSensorRepo {
	repo := &fakeSensorRepo{sensors: make(map[int64]*snhmodels.Sensor)}
	for _, s := range sensors {
		repo.sensors[s.ID] = s
	}
	return repo
}

func (r *fakeSensorRepo) Create(_ context.Context, sensor *snhmodels.Sensor) (*snhmodels.Sensor, error) {
	sensor.ID = int64(len(r.sensors) + 1)
	r.sensors[sensor.ID] = sensor
	return sensor, nil
}

func (r *fakeSensorRepo) GetByID(_ context.Context, sensorID int64) (*snhmodels.Sensor, error) {
	return r.sensors[sensorID], nil
}

func (r *fakeSensorRepo) List(context.Context) ([]snhmodels.Sensor, error) {
	return nil, nil
}

func (r *fakeSensorRepo) ListByType(context.Context, snhmodels.SensorType) ([]snhmodels.Sensor, error) {
	return nil, nil
}

func (r *fakeSensorRepo) ListByRoom(context.Context, int64) ([]snhmodels.Sensor, error) {
	return nil, nil
}

func (r *fakeSensorRepo) Update(_ context.Context, sensor *snhmodels.Sensor) error {
	if _, ok := r.sensors[sensor.ID]; !ok {
		return sql.ErrNoRows
	}
	r.sensors[sensor.ID] = sensor
	return nil
}

func (r *fakeSensorRepo) SetValue(_ context.Context, sensorID int64, value float64, recordedAt time.Time) (*snhmodels.SensorValueChange, error) {
	sensor, ok := r.sensors[sensorID]
	if !ok {
		return nil, nil
	}
	change := &snhmodels.SensorValueChange{
		SensorID:   sensorID,
		Type:       sensor.Type,
		RoomID:     sensor.RoomID,
		OldValue:   sensor.Value,
		NewValue:   value,
		RecordedAt: recordedAt,
	}
	sensor.Value = value
	return change, nil
}

func (r *fakeSensorRepo) Delete(_ context.Context, sensorID int64) error {
	if _, ok := r.sensors[sensorID]; !ok {
		return sql.ErrNoRows
	}
	delete(r.sensors, sensorID)
	return nil
}

// fakeReadingRepo is an in-memory SensorReadingRepository
type fakeReadingRepo struct {
	readings []snhmodels.SensorReading
}

func (r *fakeReadingRepo) Append(_ context.Context, reading *snhmodels.SensorReading) error {
	r.readings = append(r.readings, *reading)
	return nil
}

func (r *fakeReadingRepo) ListBySensor(_ context.Context, sensorID int64, _ interfaces.SensorReadingQueryParams) ([]snhmodels.SensorReading, error) {
	var out []snhmodels.SensorReading
	for _, reading := range r.readings {
		if reading.SensorID == sensorID {
			out = append(out, reading)
		}
	}
	return out, nil
}

func (r *fakeReadingRepo) LatestBySensor(_ context.Context, sensorID int64) (*snhmodels.SensorReading, error) {
	for idx := len(r.readings) - 1; idx >= 0; idx-- {
		if r.readings[idx].SensorID == sensorID {
			reading := r.readings[idx]
			return &reading, nil
		}
	}
	return nil, nil
}

// fakeEnergyRepo is an in-memory EnergyRepository
type fakeEnergyRepo struct {
	inserted []snhmodels.EnergyReading
}

func (r *fakeEnergyRepo) Insert(_ context.Context, reading *snhmodels.EnergyReading) error {
	reading.ID = int64(len(r.inserted) + 1)
	r.inserted = append(r.inserted, *reading)
	return nil
}

func (r *fakeEnergyRepo) Consumption(context.Context, interfaces.EnergyQueryParams) ([]snhmodels.EnergyReading, error) {
	return nil, nil
}

func (r *fakeEnergyRepo) Statistics(context.Context, interfaces.EnergyQueryParams) (*snhmodels.EnergyStatistics, error) {
	return nil, nil
}
