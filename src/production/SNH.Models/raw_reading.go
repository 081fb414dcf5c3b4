package snhmodels

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrMalformedPayload is returned for telemetry messages that do not carry
// all four required numeric fields. Such messages are dropped whole: they
// are never archived and never touch a sensor.
var ErrMalformedPayload = errors.New("malformed telemetry payload")

// RawReading is one immutable ingested telemetry message. Rows are only
// ever appended by the ingestion pipeline.
type RawReading struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TempAHT    float64            `bson:"temp_aht" json:"temp_aht"`
	HumAHT     float64            `bson:"hum_aht" json:"hum_aht"`
	TempBMP    float64            `bson:"temp_bmp" json:"temp_bmp"`
	PressBMP   float64            `bson:"press_bmp" json:"press_bmp"`
	Topic      string             `bson:"topic" json:"topic"`
	ReceivedAt time.Time          `bson:"received_at" json:"received_at"`
}

// TelemetrySource identifies one field of the telemetry payload. Fan-out
// mappings are keyed by source, not by raw field name.
type TelemetrySource string

const (
	SourceTempAHT  TelemetrySource = "temp_aht"
	SourceHumAHT   TelemetrySource = "hum_aht"
	SourceTempBMP  TelemetrySource = "temp_bmp"
	SourcePressBMP TelemetrySource = "press_bmp"
)

// Value returns the payload value for the given source
func (r *RawReading) Value(source TelemetrySource) (float64, bool) {
	switch source {
	case SourceTempAHT:
		return r.TempAHT, true
	case SourceHumAHT:
		return r.HumAHT, true
	case SourceTempBMP:
		return r.TempBMP, true
	case SourcePressBMP:
		return r.PressBMP, true
	}
	return 0, false
}

type telemetryPayload struct {
	TempAHT  *float64 `json:"temp_aht"`
	HumAHT   *float64 `json:"hum_aht"`
	TempBMP  *float64 `json:"temp_bmp"`
	PressBMP *float64 `json:"press_bmp"`
}

// ParseRawReading decodes and validates one broker message. All four
// numeric fields must be present; a missing field or a non-numeric value
// rejects the whole message.
func ParseRawReading(topic string, payload []byte, receivedAt time.Time) (*RawReading, error) {
	var p telemetryPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	required := map[string]*float64{
		"temp_aht":  p.TempAHT,
		"hum_aht":   p.HumAHT,
		"temp_bmp":  p.TempBMP,
		"press_bmp": p.PressBMP,
	}
	for name, value := range required {
		if value == nil {
			return nil, fmt.Errorf("%w: missing field %q", ErrMalformedPayload, name)
		}
	}

	return &RawReading{
		TempAHT:    *p.TempAHT,
		HumAHT:     *p.HumAHT,
		TempBMP:    *p.TempBMP,
		PressBMP:   *p.PressBMP,
		Topic:      topic,
		ReceivedAt: receivedAt.UTC(),
	}, nil
}
