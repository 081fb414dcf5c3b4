package implementation

import (
	"context"
	"database/sql"
	"fmt"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

type PostgresFloorRepository struct {
	db *sql.DB
}

func NewPostgresFloorRepository(db *sql.DB) *PostgresFloorRepository {
	return &PostgresFloorRepository{db: db}
}

func (r *PostgresFloorRepository) Create(ctx context.Context, floor *snhmodels.Floor) (*snhmodels.Floor, error) {
	query := `
		INSERT INTO floors (name, level)
		VALUES ($1, $2)
		RETURNING id, name, level, created_at
	`

	var created snhmodels.Floor
	err := r.db.QueryRowContext(ctx, query, floor.Name, floor.Level).
		Scan(&created.ID, &created.Name, &created.Level, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create floor: %w", err)
	}
	return &created, nil
}

func (r *PostgresFloorRepository) GetByID(ctx context.Context, floorID int64) (*snhmodels.Floor, error) {
	query := `SELECT id, name, level, created_at FROM floors WHERE id = $1`

	var floor snhmodels.Floor
	err := r.db.QueryRowContext(ctx, query, floorID).
		Scan(&floor.ID, &floor.Name, &floor.Level, &floor.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &floor, nil
}

func (r *PostgresFloorRepository) List(ctx context.Context) ([]snhmodels.Floor, error) {
	query := `SELECT id, name, level, created_at FROM floors ORDER BY level`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var floors []snhmodels.Floor
	for rows.Next() {
		var floor snhmodels.Floor
		if err := rows.Scan(&floor.ID, &floor.Name, &floor.Level, &floor.CreatedAt); err != nil {
			return nil, err
		}
		floors = append(floors, floor)
	}
	return floors, rows.Err()
}

func (r *PostgresFloorRepository) Update(ctx context.Context, floor *snhmodels.Floor) error {
	query := `UPDATE floors SET name = $2, level = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, floor.ID, floor.Name, floor.Level)
	if err != nil {
		return fmt.Errorf("failed to update floor %d: %w", floor.ID, err)
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

func (r *PostgresFloorRepository) Delete(ctx context.Context, floorID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM floors WHERE id = $1`, floorID)
	if err != nil {
		return fmt.Errorf("failed to delete floor %d: %w", floorID, err)
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
