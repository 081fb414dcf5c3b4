package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthChecker provides health check functionality
type HealthChecker struct {
	db          *sql.DB
	mongoClient *mongo.Client
	redisClient *redis.Client
}

// NewHealthChecker creates a new health checker. mongoClient and
// redisClient may be nil when the deployment runs without them.
func NewHealthChecker(db *sql.DB, mongoClient *mongo.Client, redisClient *redis.Client) *HealthChecker {
	return &HealthChecker{db: db, mongoClient: mongoClient, redisClient: redisClient}
}

// CheckDatabaseHealth performs a PostgreSQL health check
func (h *HealthChecker) CheckDatabaseHealth(ctx context.Context) error {
	if h.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	if err := h.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	var result int
	if err := h.db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query failed: %w", err)
	}
	return nil
}

// GetHealthStatus returns the current health status of every backend
func (h *HealthChecker) GetHealthStatus(ctx context.Context) map[string]interface{} {
	checks := make(map[string]interface{})
	overall := "ok"

	record := func(name string, err error) {
		if err != nil {
			overall = "degraded"
			checks[name] = map[string]interface{}{"status": "error", "error": err.Error()}
		} else {
			checks[name] = map[string]interface{}{"status": "ok"}
		}
	}

	record("postgres", h.CheckDatabaseHealth(ctx))

	if h.mongoClient != nil {
		record("mongo", h.mongoClient.Ping(ctx, readpref.Primary()))
	}
	if h.redisClient != nil {
		record("redis", h.redisClient.Ping(ctx).Err())
	}

	return map[string]interface{}{
		"status":    overall,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    checks,
	}
}

// DatabaseManager handles schema operations
type DatabaseManager struct {
	db *sql.DB
}

// NewDatabaseManager creates a new database manager
func NewDatabaseManager(db *sql.DB) *DatabaseManager {
	return &DatabaseManager{db: db}
}

// CreateTables creates the required tables if they don't exist
func (dm *DatabaseManager) CreateTables(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'client',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS floors (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS rooms (
			id BIGSERIAL PRIMARY KEY,
			number TEXT NOT NULL UNIQUE,
			floor_id BIGINT REFERENCES floors(id) ON DELETE SET NULL,
			type TEXT NOT NULL DEFAULT 'standard',
			status TEXT NOT NULL DEFAULT 'vacant',
			current_temperature NUMERIC(5,2),
			target_temperature NUMERIC(5,2),
			light_status BOOLEAN NOT NULL DEFAULT FALSE,
			climatization_status BOOLEAN NOT NULL DEFAULT FALSE,
			mode TEXT NOT NULL DEFAULT 'eco',
			client_id TEXT REFERENCES users(user_id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS sensors (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			room_id BIGINT REFERENCES rooms(id) ON DELETE SET NULL,
			value NUMERIC(8,2) NOT NULL DEFAULT 0,
			unit TEXT NOT NULL DEFAULT '°C',
			status TEXT NOT NULL DEFAULT 'active',
			last_reading_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sensors_type ON sensors(type)`,
		`CREATE INDEX IF NOT EXISTS idx_sensors_room ON sensors(room_id)`,
		`CREATE TABLE IF NOT EXISTS sensor_readings (
			id BIGSERIAL PRIMARY KEY,
			sensor_id BIGINT NOT NULL REFERENCES sensors(id) ON DELETE CASCADE,
			value NUMERIC(8,2) NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sensor_readings_sensor_ts ON sensor_readings(sensor_id, recorded_at DESC)`,
		`CREATE TABLE IF NOT EXISTS alerts (
			id BIGSERIAL PRIMARY KEY,
			type TEXT NOT NULL,
			severity TEXT NOT NULL DEFAULT 'info',
			status TEXT NOT NULL DEFAULT 'active',
			message TEXT NOT NULL DEFAULT '',
			room_id BIGINT REFERENCES rooms(id) ON DELETE SET NULL,
			sensor_id BIGINT REFERENCES sensors(id) ON DELETE SET NULL,
			acknowledged_by TEXT,
			acknowledged_at TIMESTAMPTZ,
			resolved_by TEXT,
			resolved_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS interventions (
			id BIGSERIAL PRIMARY KEY,
			room_id BIGINT REFERENCES rooms(id) ON DELETE SET NULL,
			technician_id TEXT REFERENCES users(user_id) ON DELETE SET NULL,
			type TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			scheduled_at TIMESTAMPTZ,
			completed_at TIMESTAMPTZ,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS energy_readings (
			id BIGSERIAL PRIMARY KEY,
			room_id BIGINT NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
			consumption_kwh NUMERIC(10,3) NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_energy_readings_room_ts ON energy_readings(room_id, recorded_at DESC)`,
	}

	for _, statement := range statements {
		if _, err := dm.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}
	return nil
}
