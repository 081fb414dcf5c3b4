package implementation

import (
	"context"
	"database/sql"
	"fmt"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
	interfaces "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Repository/Interfaces"
)

type PostgresEnergyRepository struct {
	db *sql.DB
}

func NewPostgresEnergyRepository(db *sql.DB) *PostgresEnergyRepository {
	return &PostgresEnergyRepository{db: db}
}

func (r *PostgresEnergyRepository) Insert(ctx context.Context, reading *snhmodels.EnergyReading) error {
	query := `
		INSERT INTO energy_readings (room_id, consumption_kwh, recorded_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query, reading.RoomID, reading.ConsumptionKWh, reading.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to insert energy reading: %w", err)
	}
	return nil
}

func (r *PostgresEnergyRepository) Consumption(ctx context.Context, params interfaces.EnergyQueryParams) ([]snhmodels.EnergyReading, error) {
	query := `SELECT id, room_id, consumption_kwh, recorded_at FROM energy_readings WHERE 1=1`
	args := []interface{}{}
	argn := 1

	if params.RoomID != nil {
		query += fmt.Sprintf(" AND room_id = $%d", argn)
		args = append(args, *params.RoomID)
		argn++
	}
	if params.From != nil {
		query += fmt.Sprintf(" AND recorded_at >= $%d", argn)
		args = append(args, *params.From)
		argn++
	}
	if params.To != nil {
		query += fmt.Sprintf(" AND recorded_at <= $%d", argn)
		args = append(args, *params.To)
		argn++
	}

	limit := params.Limit
	if limit <= 0 || limit > 5000 {
		limit = 500
	}
	query += fmt.Sprintf(" ORDER BY recorded_at DESC LIMIT $%d", argn)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []snhmodels.EnergyReading
	for rows.Next() {
		var reading snhmodels.EnergyReading
		if err := rows.Scan(&reading.ID, &reading.RoomID, &reading.ConsumptionKWh, &reading.RecordedAt); err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}
	return readings, rows.Err()
}

func (r *PostgresEnergyRepository) Statistics(ctx context.Context, params interfaces.EnergyQueryParams) (*snhmodels.EnergyStatistics, error) {
	query := `
		SELECT COALESCE(SUM(consumption_kwh), 0),
		       COALESCE(AVG(consumption_kwh), 0),
		       COUNT(*),
		       COUNT(DISTINCT room_id)
		FROM energy_readings
		WHERE 1=1
	`
	args := []interface{}{}
	argn := 1

	if params.From != nil {
		query += fmt.Sprintf(" AND recorded_at >= $%d", argn)
		args = append(args, *params.From)
		argn++
	}
	if params.To != nil {
		query += fmt.Sprintf(" AND recorded_at <= $%d", argn)
		args = append(args, *params.To)
		argn++
	}

	var stats snhmodels.EnergyStatistics
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&stats.TotalKWh, &stats.AverageKWh, &stats.SampleCount, &stats.RoomsCovered)
	if err != nil {
		if err == sql.ErrNoRows {
			return &snhmodels.EnergyStatistics{}, nil
		}
		return nil, err
	}
	return &stats, nil
}
