package implementation

import (
	"context"
	"database/sql"
	"fmt"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
	interfaces "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Repository/Interfaces"
)

type PostgresSensorReadingRepository struct {
	db *sql.DB
}

func NewPostgresSensorReadingRepository(db *sql.DB) *PostgresSensorReadingRepository {
	return &PostgresSensorReadingRepository{db: db}
}

func (r *PostgresSensorReadingRepository) Append(ctx context.Context, reading *snhmodels.SensorReading) error {
	query := `
		INSERT INTO sensor_readings (sensor_id, value, recorded_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query, reading.SensorID, reading.Value, reading.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to append reading for sensor %d: %w", reading.SensorID, err)
	}
	return nil
}

func (r *PostgresSensorReadingRepository) ListBySensor(ctx context.Context, sensorID int64, params interfaces.SensorReadingQueryParams) ([]snhmodels.SensorReading, error) {
	limit := params.Limit
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := `
		SELECT id, sensor_id, value, recorded_at
		FROM sensor_readings
		WHERE sensor_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, sensorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []snhmodels.SensorReading
	for rows.Next() {
		var reading snhmodels.SensorReading
		if err := rows.Scan(&reading.ID, &reading.SensorID, &reading.Value, &reading.RecordedAt); err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}
	return readings, rows.Err()
}

func (r *PostgresSensorReadingRepository) LatestBySensor(ctx context.Context, sensorID int64) (*snhmodels.SensorReading, error) {
	query := `
		SELECT id, sensor_id, value, recorded_at
		FROM sensor_readings
		WHERE sensor_id = $1
		ORDER BY recorded_at DESC
		LIMIT 1
	`

	var reading snhmodels.SensorReading
	err := r.db.QueryRowContext(ctx, query, sensorID).
		Scan(&reading.ID, &reading.SensorID, &reading.Value, &reading.RecordedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &reading, nil
}
