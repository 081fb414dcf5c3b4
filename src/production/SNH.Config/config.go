package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `json:"server"`

	// Database configuration
	Database DatabaseConfig `json:"database"`

	// Mongo configuration (raw telemetry archive)
	Mongo MongoConfig `json:"mongo"`

	// Redis configuration (latest-value hot cache)
	Redis RedisConfig `json:"redis"`

	// Broker configuration
	Broker BrokerConfig `json:"broker"`

	// Auth configuration
	Auth AuthConfig `json:"auth"`

	// Logging configuration
	Logging LoggingConfig `json:"logging"`

	// CORS configuration
	CORS CORSConfig `json:"cors"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port         string        `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// DatabaseConfig holds PostgreSQL-related configuration
type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
	MaxConns int    `json:"max_conns"`
	MinConns int    `json:"min_conns"`
}

// MongoConfig holds the raw telemetry archive configuration
type MongoConfig struct {
	URI        string        `json:"uri"`
	Database   string        `json:"database"`
	Collection string        `json:"collection"`
	Timeout    time.Duration `json:"timeout"`
}

// RedisConfig holds the hot cache configuration
type RedisConfig struct {
	Addr     string        `json:"addr"`
	Password string        `json:"password"`
	DB       int           `json:"db"`
	TTL      time.Duration `json:"ttl"`
}

// BrokerConfig holds the telemetry broker configuration
type BrokerConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	User            string        `json:"user"`
	Pass            string        `json:"pass"`
	UseTLS          bool          `json:"use_tls"`
	CACertPath      string        `json:"ca_cert_path"`
	Topic           string        `json:"topic"`
	ClientID        string        `json:"client_id"`
	KeepAlive       time.Duration `json:"keep_alive"`
	PingTimeout     time.Duration `json:"ping_timeout"`
	LastWillTopic   string        `json:"last_will_topic"`
	LastWillMessage string        `json:"last_will_message"`

	// ReconnectDelay is the fixed backoff between connect attempts after
	// a broker failure.
	ReconnectDelay time.Duration `json:"reconnect_delay"`

	// CycleInterval throttles ingestion: queued messages are drained once
	// per interval, not as fast as they arrive.
	CycleInterval time.Duration `json:"cycle_interval"`
}

// AuthConfig holds authentication-related configuration
type AuthConfig struct {
	JWTSecretKey         string        `json:"jwt_secret_key"`
	JWTIssuer            string        `json:"jwt_issuer"`
	AccessTokenDuration  time.Duration `json:"access_token_duration"`
	RefreshTokenDuration time.Duration `json:"refresh_token_duration"`
	PasswordMinLength    int           `json:"password_min_length"`
	Admin                AdminConfig   `json:"admin"`
}

// AdminConfig holds the bootstrap admin user configuration
type AdminConfig struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level        string `json:"level"`
	Format       string `json:"format"` // json or text
	Output       string `json:"output"` // stdout or stderr
	EnableCaller bool   `json:"enable_caller"`
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	ExposedHeaders   []string `json:"exposed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
	MaxAge           int      `json:"max_age"`
}

// IngestorConfig holds configuration for the telemetry ingestor service
type IngestorConfig struct {
	Broker   BrokerConfig   `json:"broker"`
	Database DatabaseConfig `json:"database"`
	Mongo    MongoConfig    `json:"mongo"`
	Redis    RedisConfig    `json:"redis"`
	Logging  LoggingConfig  `json:"logging"`
}

func loadBrokerConfig(clientID string) BrokerConfig {
	return BrokerConfig{
		Host:            getEnv("BROKER_HOST", "localhost"),
		Port:            getInt("BROKER_PORT", 1883),
		User:            getEnv("BROKER_USER", ""),
		Pass:            getEnv("BROKER_PASS", ""),
		UseTLS:          getBool("BROKER_TLS", false),
		CACertPath:      getEnv("BROKER_CA_FILE", ""),
		Topic:           getEnv("BROKER_TOPIC", "esp32/sensor"),
		ClientID:        getEnv("BROKER_CLIENT_ID", clientID),
		KeepAlive:       getDuration("BROKER_KEEP_ALIVE", 60*time.Second),
		PingTimeout:     getDuration("BROKER_PING_TIMEOUT", 10*time.Second),
		LastWillTopic:   getEnv("BROKER_LAST_WILL_TOPIC", "esp32/status"),
		LastWillMessage: getEnv("BROKER_LAST_WILL_MESSAGE", "telemetry listener disconnected"),
		ReconnectDelay:  getDuration("BROKER_RECONNECT_DELAY", 5*time.Second),
		CycleInterval:   getDuration("INGEST_CYCLE_INTERVAL", 20*time.Second),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("POSTGRES_HOST", "localhost"),
		Port:     getInt("POSTGRES_PORT", 5432),
		User:     getRequiredEnv("POSTGRES_USER"),
		Password: getRequiredEnv("POSTGRES_PASSWORD"),
		DBName:   getEnv("POSTGRES_DB", "hotel_energy"),
		SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		MaxConns: getInt("POSTGRES_MAX_CONNS", 25),
		MinConns: getInt("POSTGRES_MIN_CONNS", 5),
	}
}

func loadMongoConfig() MongoConfig {
	return MongoConfig{
		URI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		Database:   getEnv("MONGO_DB", "hotel_energy"),
		Collection: getEnv("MONGO_RAW_COLLECTION", "raw_readings"),
		Timeout:    getDuration("MONGO_TIMEOUT", 10*time.Second),
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getInt("REDIS_DB", 0),
		TTL:      getDuration("REDIS_SENSOR_TTL", 24*time.Hour),
	}
}

func loadLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:        getEnv("LOG_LEVEL", "info"),
		Format:       getEnv("LOG_FORMAT", "text"),
		Output:       getEnv("LOG_OUTPUT", "stdout"),
		EnableCaller: getBool("LOG_ENABLE_CALLER", false),
	}
}

// LoadIngestorConfig loads configuration for the telemetry ingestor service
func LoadIngestorConfig() (*IngestorConfig, error) {
	// A missing .env file is fine; plain environment variables work too.
	_ = godotenv.Load()

	cfg := &IngestorConfig{
		Broker:   loadBrokerConfig("snh-ingestor"),
		Database: loadDatabaseConfig(),
		Mongo:    loadMongoConfig(),
		Redis:    loadRedisConfig(),
		Logging:  loadLoggingConfig(),
	}

	if cfg.Broker.CycleInterval <= 0 {
		return nil, fmt.Errorf("INGEST_CYCLE_INTERVAL must be positive")
	}
	if cfg.Broker.ReconnectDelay <= 0 {
		return nil, fmt.Errorf("BROKER_RECONNECT_DELAY must be positive")
	}

	return cfg, nil
}

// LoadApiConfig loads configuration for the API service
func LoadApiConfig() (*Config, error) {
	// A missing .env file is fine; plain environment variables work too.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "9002"),
			ReadTimeout:  getDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDuration("WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDuration("IDLE_TIMEOUT", 120*time.Second),
		},
		Database: loadDatabaseConfig(),
		Mongo:    loadMongoConfig(),
		Redis:    loadRedisConfig(),
		Broker:   loadBrokerConfig("snh-api-service"),
		Auth: AuthConfig{
			JWTSecretKey:         getEnv("JWT_SECRET_KEY", "change-this-secret-in-production"),
			JWTIssuer:            getEnv("JWT_ISSUER", "snh-api-service"),
			AccessTokenDuration:  getDuration("JWT_ACCESS_TOKEN_DURATION", 15*time.Minute),
			RefreshTokenDuration: getDuration("JWT_REFRESH_TOKEN_DURATION", 7*24*time.Hour),
			PasswordMinLength:    getInt("PASSWORD_MIN_LENGTH", 8),
			Admin: AdminConfig{
				Name:     getEnv("ADMIN_NAME", "admin"),
				Email:    getEnv("ADMIN_EMAIL", "admin@example.com"),
				Password: getEnv("ADMIN_PASSWORD", "adminpassword123"),
			},
		},
		Logging: loadLoggingConfig(),
		CORS: CORSConfig{
			AllowedOrigins:   getStringSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			AllowedMethods:   getStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getStringSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
			ExposedHeaders:   getStringSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length"}),
			AllowCredentials: getBool("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           getInt("CORS_MAX_AGE", 43200),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.User == "" {
		return fmt.Errorf("POSTGRES_USER is required")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if c.Auth.JWTSecretKey == "change-this-secret-in-production" {
		log.Println("WARNING: Using default JWT secret key. Change JWT_SECRET_KEY in production!")
	}
	if c.Auth.PasswordMinLength < 6 {
		return fmt.Errorf("password minimum length must be at least 6")
	}
	return nil
}

// GetDatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// GetBrokerURL returns the MQTT broker URL
func (c *BrokerConfig) GetBrokerURL() string {
	scheme := "tcp"
	if c.UseTLS {
		scheme = "tcps"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, c.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getRequiredEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("missing required environment variable: %s", key)
	}
	return value
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return intValue
}

func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Fatalf("invalid %s: %q (expected true/false or 1/0)", key, value)
	}
	return boolValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return duration
}

func getStringSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
