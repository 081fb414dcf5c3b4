package snhmodels

import (
	"errors"
	"testing"
	"time"
)

func TestParseRawReading(t *testing.T) {
	receivedAt := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{
			name:    "valid payload",
			payload: `{"temp_aht": 21.5, "hum_aht": 48.2, "temp_bmp": 21.8, "press_bmp": 1013.25}`,
		},
		{
			name:    "integer values",
			payload: `{"temp_aht": 21, "hum_aht": 48, "temp_bmp": 22, "press_bmp": 1013}`,
		},
		{
			name:    "extra fields are ignored",
			payload: `{"temp_aht": 21.5, "hum_aht": 48.2, "temp_bmp": 21.8, "press_bmp": 1013.25, "battery": 87}`,
		},
		{
			name:    "missing temp_aht",
			payload: `{"hum_aht": 48.2, "temp_bmp": 21.8, "press_bmp": 1013.25}`,
			wantErr: true,
		},
		{
			name:    "missing hum_aht",
			payload: `{"temp_aht": 21.5, "temp_bmp": 21.8, "press_bmp": 1013.25}`,
			wantErr: true,
		},
		{
			name:    "missing temp_bmp",
			payload: `{"temp_aht": 21.5, "hum_aht": 48.2, "press_bmp": 1013.25}`,
			wantErr: true,
		},
		{
			name:    "missing press_bmp",
			payload: `{"temp_aht": 21.5, "hum_aht": 48.2, "temp_bmp": 21.8}`,
			wantErr: true,
		},
		{
			name:    "null field",
			payload: `{"temp_aht": null, "hum_aht": 48.2, "temp_bmp": 21.8, "press_bmp": 1013.25}`,
			wantErr: true,
		},
		{
			name:    "non-numeric field",
			payload: `{"temp_aht": "21.5", "hum_aht": 48.2, "temp_bmp": 21.8, "press_bmp": 1013.25}`,
			wantErr: true,
		},
		{
			name:    "not json",
			payload: `temp_aht=21.5`,
			wantErr: true,
		},
		{
			name:    "empty object",
			payload: `{}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := ParseRawReading("esp32/sensor", []byte(tt.payload), receivedAt)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got reading %+v", raw)
				}
				if !errors.Is(err, ErrMalformedPayload) {
					t.Fatalf("expected ErrMalformedPayload, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if raw.Topic != "esp32/sensor" {
				t.Errorf("topic = %q, want %q", raw.Topic, "esp32/sensor")
			}
			if !raw.ReceivedAt.Equal(receivedAt) {
				t.Errorf("received_at = %v, want %v", raw.ReceivedAt, receivedAt)
			}
		})
	}
}

func TestParseRawReadingValues(t *testing.T) {
	payload := `{"temp_aht": 21.5, "hum_aht": 48.2, "temp_bmp": 21.8, "press_bmp": 1013.25}`

	raw, err := ParseRawReading("esp32/sensor", []byte(payload), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[TelemetrySource]float64{
		SourceTempAHT:  21.5,
		SourceHumAHT:   48.2,
		SourceTempBMP:  21.8,
		SourcePressBMP: 1013.25,
	}
	for source, expected := range want {
		value, ok := raw.Value(source)
		if !ok {
			t.Fatalf("Value(%q) not found", source)
		}
		if value != expected {
			t.Errorf("Value(%q) = %v, want %v", source, value, expected)
		}
	}

	if _, ok := raw.Value("battery"); ok {
		t.Error("unknown source should not resolve")
	}
}

func TestSensorValueChangeChanged(t *testing.T) {
	same := SensorValueChange{OldValue: 21.5, NewValue: 21.5}
	if same.Changed() {
		t.Error("identical values should not count as a change")
	}

	moved := SensorValueChange{OldValue: 21.5, NewValue: 22.0}
	if !moved.Changed() {
		t.Error("different values should count as a change")
	}
}
