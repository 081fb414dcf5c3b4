package snhingestor

import (
	"context"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
	interfaces "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Repository/Interfaces"
)

// SourceMapping resolves which sensors a telemetry source field fans out
// to. An unmapped source resolves to no targets, which the dispatcher
// treats as a no-op.
type SourceMapping interface {
	TargetSensors(ctx context.Context, source snhmodels.TelemetrySource) ([]snhmodels.Sensor, error)
}

// AllOfTypeMapping is the default strategy: one physical probe fans out to
// every sensor record of the matching type. temp_bmp and press_bmp are
// archived but drive no sensors.
type AllOfTypeMapping struct {
	sensors interfaces.SensorRepository
	types   map[snhmodels.TelemetrySource]snhmodels.SensorType
}

// NewAllOfTypeMapping creates the default source-to-type mapping
func NewAllOfTypeMapping(sensors interfaces.SensorRepository) *AllOfTypeMapping {
	return &AllOfTypeMapping{
		sensors: sensors,
		types: map[snhmodels.TelemetrySource]snhmodels.SensorType{
			snhmodels.SourceTempAHT: snhmodels.SensorTypeTemperature,
			snhmodels.SourceHumAHT:  snhmodels.SensorTypeHumidity,
		},
	}
}

func (m *AllOfTypeMapping) TargetSensors(ctx context.Context, source snhmodels.TelemetrySource) ([]snhmodels.Sensor, error) {
	sensorType, ok := m.types[source]
	if !ok {
		return nil, nil
	}
	return m.sensors.ListByType(ctx, sensorType)
}

// StaticMapping binds telemetry sources to explicit sensor ids, for
// deployments with more than one physical probe. Unknown ids are skipped.
type StaticMapping struct {
	sensors interfaces.SensorRepository
	targets map[snhmodels.TelemetrySource][]int64
}

// NewStaticMapping creates an explicit source-to-sensor-ids mapping
func NewStaticMapping(sensors interfaces.SensorRepository, targets map[snhmodels.TelemetrySource][]int64) *StaticMapping {
	return &StaticMapping{sensors: sensors, targets: targets}
}

func (m *StaticMapping) TargetSensors(ctx context.Context, source snhmodels.TelemetrySource) ([]snhmodels.Sensor, error) {
	ids, ok := m.targets[source]
	if !ok {
		return nil, nil
	}

	var sensors []snhmodels.Sensor
	for _, id := range ids {
		sensor, err := m.sensors.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if sensor == nil {
			continue
		}
		sensors = append(sensors, *sensor)
	}
	return sensors, nil
}
