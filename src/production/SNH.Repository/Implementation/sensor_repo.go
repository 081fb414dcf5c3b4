package implementation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

type PostgresSensorRepository struct {
	db *sql.DB
}

func NewPostgresSensorRepository(db *sql.DB) *PostgresSensorRepository {
	return &PostgresSensorRepository{db: db}
}

const sensorColumns = `id, name, type, room_id, value, unit, status, last_reading_at, created_at, updated_at`

func scanSensor(row interface{ Scan(...interface{}) error }) (*snhmodels.Sensor, error) {
	var s snhmodels.Sensor
	err := row.Scan(&s.ID, &s.Name, &s.Type, &s.RoomID, &s.Value, &s.Unit, &s.Status, &s.LastReadingAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresSensorRepository) Create(ctx context.Context, sensor *snhmodels.Sensor) (*snhmodels.Sensor, error) {
	query := `
		INSERT INTO sensors (name, type, room_id, value, unit, status, last_reading_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + sensorColumns

	row := r.db.QueryRowContext(ctx, query,
		sensor.Name, sensor.Type, sensor.RoomID, sensor.Value, sensor.Unit, sensor.Status, sensor.LastReadingAt)

	created, err := scanSensor(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create sensor: %w", err)
	}
	return created, nil
}

func (r *PostgresSensorRepository) GetByID(ctx context.Context, sensorID int64) (*snhmodels.Sensor, error) {
	query := `SELECT ` + sensorColumns + ` FROM sensors WHERE id = $1`

	sensor, err := scanSensor(r.db.QueryRowContext(ctx, query, sensorID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return sensor, nil
}

func (r *PostgresSensorRepository) List(ctx context.Context) ([]snhmodels.Sensor, error) {
	query := `SELECT ` + sensorColumns + ` FROM sensors ORDER BY name`
	return r.querySensors(ctx, query)
}

func (r *PostgresSensorRepository) ListByType(ctx context.Context, sensorType snhmodels.SensorType) ([]snhmodels.Sensor, error) {
	query := `SELECT ` + sensorColumns + ` FROM sensors WHERE type = $1 ORDER BY id`
	return r.querySensors(ctx, query, sensorType)
}

func (r *PostgresSensorRepository) ListByRoom(ctx context.Context, roomID int64) ([]snhmodels.Sensor, error) {
	query := `SELECT ` + sensorColumns + ` FROM sensors WHERE room_id = $1 ORDER BY name`
	return r.querySensors(ctx, query, roomID)
}

func (r *PostgresSensorRepository) querySensors(ctx context.Context, query string, args ...interface{}) ([]snhmodels.Sensor, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sensors []snhmodels.Sensor
	for rows.Next() {
		sensor, err := scanSensor(rows)
		if err != nil {
			return nil, err
		}
		sensors = append(sensors, *sensor)
	}
	return sensors, rows.Err()
}

func (r *PostgresSensorRepository) Update(ctx context.Context, sensor *snhmodels.Sensor) error {
	query := `
		UPDATE sensors
		SET name = $2, type = $3, room_id = $4, unit = $5, status = $6, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		sensor.ID, sensor.Name, sensor.Type, sensor.RoomID, sensor.Unit, sensor.Status)
	if err != nil {
		return fmt.Errorf("failed to update sensor %d: %w", sensor.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetValue is the single write path for the cached value column. The old
// value is captured in the same statement so callers can tell a genuine
// change from a no-op rewrite, and the row's current type and room
// assignment are read back at write time rather than trusted from the
// caller, so an administrative reassignment is visible to the very next
// reading.
func (r *PostgresSensorRepository) SetValue(ctx context.Context, sensorID int64, value float64, recordedAt time.Time) (*snhmodels.SensorValueChange, error) {
	query := `
		UPDATE sensors s
		SET value = $2, last_reading_at = $3, updated_at = NOW()
		FROM (SELECT value AS old_value FROM sensors WHERE id = $1 FOR UPDATE) prev
		WHERE s.id = $1
		RETURNING prev.old_value, s.value, s.type, s.room_id
	`

	change := snhmodels.SensorValueChange{
		SensorID:   sensorID,
		RecordedAt: recordedAt,
	}
	err := r.db.QueryRowContext(ctx, query, sensorID, value, recordedAt).
		Scan(&change.OldValue, &change.NewValue, &change.Type, &change.RoomID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to set value for sensor %d: %w", sensorID, err)
	}

	return &change, nil
}

func (r *PostgresSensorRepository) Delete(ctx context.Context, sensorID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sensors WHERE id = $1`, sensorID)
	if err != nil {
		return fmt.Errorf("failed to delete sensor %d: %w", sensorID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
