package implementation

import (
	"context"
	"database/sql"
	"fmt"

	snhmodels "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models"
)

type PostgresRoomRepository struct {
	db *sql.DB
}

func NewPostgresRoomRepository(db *sql.DB) *PostgresRoomRepository {
	return &PostgresRoomRepository{db: db}
}

const roomColumns = `id, number, floor_id, type, status, current_temperature, target_temperature, light_status, climatization_status, mode, client_id, created_at, updated_at`

func scanRoom(row interface{ Scan(...interface{}) error }) (*snhmodels.Room, error) {
	var room snhmodels.Room
	err := row.Scan(&room.ID, &room.Number, &room.FloorID, &room.Type, &room.Status,
		&room.CurrentTemperature, &room.TargetTemperature, &room.LightStatus,
		&room.ClimatizationStatus, &room.Mode, &room.ClientID, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *PostgresRoomRepository) Create(ctx context.Context, room *snhmodels.Room) (*snhmodels.Room, error) {
	query := `
		INSERT INTO rooms (number, floor_id, type, status, target_temperature, light_status, climatization_status, mode, client_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + roomColumns

	row := r.db.QueryRowContext(ctx, query,
		room.Number, room.FloorID, room.Type, room.Status, room.TargetTemperature,
		room.LightStatus, room.ClimatizationStatus, room.Mode, room.ClientID)

	created, err := scanRoom(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return created, nil
}

func (r *PostgresRoomRepository) GetByID(ctx context.Context, roomID int64) (*snhmodels.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	room, err := scanRoom(r.db.QueryRowContext(ctx, query, roomID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return room, nil
}

func (r *PostgresRoomRepository) GetByNumber(ctx context.Context, number string) (*snhmodels.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE number = $1`

	room, err := scanRoom(r.db.QueryRowContext(ctx, query, number))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return room, nil
}

func (r *PostgresRoomRepository) List(ctx context.Context) ([]snhmodels.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms ORDER BY number`
	return r.queryRooms(ctx, query)
}

func (r *PostgresRoomRepository) ListByFloor(ctx context.Context, floorID int64) ([]snhmodels.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE floor_id = $1 ORDER BY number`
	return r.queryRooms(ctx, query, floorID)
}

func (r *PostgresRoomRepository) queryRooms(ctx context.Context, query string, args ...interface{}) ([]snhmodels.Room, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []snhmodels.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	return rooms, rows.Err()
}

// Update writes the administrative fields of a room. current_temperature is
// deliberately absent from the statement so an administrative edit can
// never clobber the projection owned by the ingestion path.
func (r *PostgresRoomRepository) Update(ctx context.Context, room *snhmodels.Room) error {
	query := `
		UPDATE rooms
		SET number = $2, floor_id = $3, type = $4, status = $5, target_temperature = $6,
		    light_status = $7, climatization_status = $8, mode = $9, client_id = $10, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		room.ID, room.Number, room.FloorID, room.Type, room.Status, room.TargetTemperature,
		room.LightStatus, room.ClimatizationStatus, room.Mode, room.ClientID)
	if err != nil {
		return fmt.Errorf("failed to update room %d: %w", room.ID, err)
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

func (r *PostgresRoomRepository) SetMode(ctx context.Context, roomID int64, mode snhmodels.RoomMode) error {
	return r.setField(ctx, roomID, `UPDATE rooms SET mode = $2, updated_at = NOW() WHERE id = $1`, mode)
}

func (r *PostgresRoomRepository) SetEquipment(ctx context.Context, roomID int64, equipment string, state bool) error {
	var query string
	switch equipment {
	case "light":
		query = `UPDATE rooms SET light_status = $2, updated_at = NOW() WHERE id = $1`
	case "climatization":
		query = `UPDATE rooms SET climatization_status = $2, updated_at = NOW() WHERE id = $1`
	default:
		return fmt.Errorf("unknown equipment %q", equipment)
	}
	return r.setField(ctx, roomID, query, state)
}

// SetCurrentTemperature is a single-row atomic write of the denormalized
// projection column and touches nothing else on the row.
func (r *PostgresRoomRepository) SetCurrentTemperature(ctx context.Context, roomID int64, temperature float64) error {
	return r.setField(ctx, roomID, `UPDATE rooms SET current_temperature = $2, updated_at = NOW() WHERE id = $1`, temperature)
}

func (r *PostgresRoomRepository) setField(ctx context.Context, roomID int64, query string, value interface{}) error {
	result, err := r.db.ExecContext(ctx, query, roomID, value)
	if err != nil {
		return fmt.Errorf("failed to update room %d: %w", roomID, err)
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

func (r *PostgresRoomRepository) Delete(ctx context.Context, roomID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, roomID)
	if err != nil {
		return fmt.Errorf("failed to delete room %d: %w", roomID, err)
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
