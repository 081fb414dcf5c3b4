package implementation

import (
	"context"
	"database/sql"
	"fmt"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

type PostgresAlertRepository struct {
	db *sql.DB
}

func NewPostgresAlertRepository(db *sql.DB) *PostgresAlertRepository {
	return &PostgresAlertRepository{db: db}
}

const alertColumns = `id, type, severity, status, message, room_id, sensor_id, acknowledged_by, acknowledged_at, resolved_by, resolved_at, created_at`

func scanAlert(row interface{ Scan(...interface{}) error }) (*snhmodels.Alert, error) {
	var a snhmodels.Alert
	err := row.Scan(&a.ID, &a.Type, &a.Severity, &a.Status, &a.Message, &a.RoomID, &a.SensorID,
		&a.AcknowledgedBy, &a.AcknowledgedAt, &a.ResolvedBy, &a.ResolvedAt, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresAlertRepository) Create(ctx context.Context, alert *snhmodels.Alert) (*snhmodels.Alert, error) {
	query := `
		INSERT INTO alerts (type, severity, status, message, room_id, sensor_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + alertColumns

	row := r.db.QueryRowContext(ctx, query,
		alert.Type, alert.Severity, snhmodels.AlertStatusActive, alert.Message, alert.RoomID, alert.SensorID)

	created, err := scanAlert(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}
	return created, nil
}

func (r *PostgresAlertRepository) GetByID(ctx context.Context, alertID int64) (*snhmodels.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`

	alert, err := scanAlert(r.db.QueryRowContext(ctx, query, alertID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return alert, nil
}

func (r *PostgresAlertRepository) List(ctx context.Context, status snhmodels.AlertStatus) ([]snhmodels.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []snhmodels.Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, *alert)
	}
	return alerts, rows.Err()
}

func (r *PostgresAlertRepository) Acknowledge(ctx context.Context, alertID int64, userID string) error {
	query := `
		UPDATE alerts
		SET status = $2, acknowledged_by = $3, acknowledged_at = NOW()
		WHERE id = $1 AND status = $4
	`

	result, err := r.db.ExecContext(ctx, query, alertID, snhmodels.AlertStatusAcknowledged, userID, snhmodels.AlertStatusActive)
	if err != nil {
		return fmt.Errorf("failed to acknowledge alert %d: %w", alertID, err)
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

func (r *PostgresAlertRepository) Resolve(ctx context.Context, alertID int64, userID string) error {
	query := `
		UPDATE alerts
		SET status = $2, resolved_by = $3, resolved_at = NOW()
		WHERE id = $1 AND status <> $2
	`

	result, err := r.db.ExecContext(ctx, query, alertID, snhmodels.AlertStatusResolved, userID)
	if err != nil {
		return fmt.Errorf("failed to resolve alert %d: %w", alertID, err)
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
