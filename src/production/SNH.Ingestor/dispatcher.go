package snhingestor

import (
	"context"

	logger "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Logger"
	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

// fanoutSources lists payload fields in dispatch order
var fanoutSources = []snhmodels.TelemetrySource{
	snhmodels.SourceTempAHT,
	snhmodels.SourceHumAHT,
	snhmodels.SourceTempBMP,
	snhmodels.SourcePressBMP,
}

// Dispatcher fans one raw reading out to every mapped sensor. Each sensor
// update is an independent unit of work: a failure is logged and skipped,
// never retried in the same pass, and never aborts the remaining sensors.
type Dispatcher struct {
	writer  *SensorWriter
	mapping SourceMapping
	logger  *logger.Logger
}

// NewDispatcher creates a fan-out dispatcher
func NewDispatcher(writer *SensorWriter, mapping SourceMapping, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		writer:  writer,
		mapping: mapping,
		logger:  log,
	}
}

// OnRawReading broadcasts each mapped payload field to its target sensors
func (d *Dispatcher) OnRawReading(ctx context.Context, raw *snhmodels.RawReading) {
	for _, source := range fanoutSources {
		value, ok := raw.Value(source)
		if !ok {
			continue
		}

		targets, err := d.mapping.TargetSensors(ctx, source)
		if err != nil {
			d.logger.Logger.Error().Err(err).Str("source", string(source)).Msg("Failed to resolve fan-out targets")
			continue
		}
		if len(targets) == 0 {
			continue
		}

		for _, sensor := range targets {
			if _, err := d.writer.SetValue(ctx, sensor.ID, value, raw.ReceivedAt); err != nil {
				d.logger.Logger.Error().Err(err).
					Int64("sensor_id", sensor.ID).
					Str("source", string(source)).
					Msg("Sensor update failed, will self-correct on next reading")
			}
		}
	}
}
