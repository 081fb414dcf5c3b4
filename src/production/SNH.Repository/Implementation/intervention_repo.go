package implementation

import (
	"context"
	"database/sql"
	"fmt"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

type PostgresInterventionRepository struct {
	db *sql.DB
}

func NewPostgresInterventionRepository(db *sql.DB) *PostgresInterventionRepository {
	return &PostgresInterventionRepository{db: db}
}

const interventionColumns = `id, room_id, technician_id, type, description, status, scheduled_at, completed_at, notes, created_at, updated_at`

func scanIntervention(row interface{ Scan(...interface{}) error }) (*snhmodels.Intervention, error) {
	var iv snhmodels.Intervention
	err := row.Scan(&iv.ID, &iv.RoomID, &iv.TechnicianID, &iv.Type, &iv.Description, &iv.Status,
		&iv.ScheduledAt, &iv.CompletedAt, &iv.Notes, &iv.CreatedAt, &iv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

func (r *PostgresInterventionRepository) Create(ctx context.Context, intervention *snhmodels.Intervention) (*snhmodels.Intervention, error) {
	query := `
		INSERT INTO interventions (room_id, technician_id, type, description, status, scheduled_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + interventionColumns

	row := r.db.QueryRowContext(ctx, query,
		intervention.RoomID, intervention.TechnicianID, intervention.Type, intervention.Description,
		intervention.Status, intervention.ScheduledAt, intervention.Notes)

	created, err := scanIntervention(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create intervention: %w", err)
	}
	return created, nil
}

func (r *PostgresInterventionRepository) GetByID(ctx context.Context, interventionID int64) (*snhmodels.Intervention, error) {
	query := `SELECT ` + interventionColumns + ` FROM interventions WHERE id = $1`

	intervention, err := scanIntervention(r.db.QueryRowContext(ctx, query, interventionID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return intervention, nil
}

func (r *PostgresInterventionRepository) List(ctx context.Context) ([]snhmodels.Intervention, error) {
	query := `SELECT ` + interventionColumns + ` FROM interventions ORDER BY created_at DESC`
	return r.queryInterventions(ctx, query)
}

func (r *PostgresInterventionRepository) ListByTechnician(ctx context.Context, technicianID string) ([]snhmodels.Intervention, error) {
	query := `SELECT ` + interventionColumns + ` FROM interventions WHERE technician_id = $1 ORDER BY created_at DESC`
	return r.queryInterventions(ctx, query, technicianID)
}

func (r *PostgresInterventionRepository) queryInterventions(ctx context.Context, query string, args ...interface{}) ([]snhmodels.Intervention, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interventions []snhmodels.Intervention
	for rows.Next() {
		intervention, err := scanIntervention(rows)
		if err != nil {
			return nil, err
		}
		interventions = append(interventions, *intervention)
	}
	return interventions, rows.Err()
}

func (r *PostgresInterventionRepository) Update(ctx context.Context, intervention *snhmodels.Intervention) error {
	query := `
		UPDATE interventions
		SET room_id = $2, technician_id = $3, type = $4, description = $5, status = $6,
		    scheduled_at = $7, notes = $8, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		intervention.ID, intervention.RoomID, intervention.TechnicianID, intervention.Type,
		intervention.Description, intervention.Status, intervention.ScheduledAt, intervention.Notes)
	if err != nil {
		return fmt.Errorf("failed to update intervention %d: %w", intervention.ID, err)
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

func (r *PostgresInterventionRepository) Complete(ctx context.Context, interventionID int64, notes string) error {
	query := `
		UPDATE interventions
		SET status = $2, completed_at = NOW(), notes = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, interventionID, snhmodels.InterventionStatusCompleted, notes)
	if err != nil {
		return fmt.Errorf("failed to complete intervention %d: %w", interventionID, err)
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

func (r *PostgresInterventionRepository) Delete(ctx context.Context, interventionID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM interventions WHERE id = $1`, interventionID)
	if err != nil {
		return fmt.Errorf("failed to delete intervention %d: %w", interventionID, err)
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
