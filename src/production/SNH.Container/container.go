package container

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	config "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Config"
	logger "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Logger"
)

// Container manages shared dependencies and their lifecycle
type Container struct {
	dbCfg    config.DatabaseConfig
	mongoCfg config.MongoConfig
	redisCfg config.RedisConfig
	logger   *logger.Logger

	db          *sql.DB
	mongoClient *mongo.Client
	redisClient *redis.Client

	// Mutex for thread-safe access
	mu sync.Mutex

	// Cleanup functions
	cleanupFuncs []func() error
}

// ApiContainer manages dependencies for the API service
type ApiContainer struct {
	*Container
	config *config.Config
}

// IngestorContainer manages dependencies for the telemetry ingestor service
type IngestorContainer struct {
	*Container
	config *config.IngestorConfig
}

func newContainer(dbCfg config.DatabaseConfig, mongoCfg config.MongoConfig, redisCfg config.RedisConfig, log *logger.Logger) *Container {
	return &Container{
		dbCfg:    dbCfg,
		mongoCfg: mongoCfg,
		redisCfg: redisCfg,
		logger:   log,
	}
}

// NewApiContainer creates a new container for the API service
func NewApiContainer() (*ApiContainer, error) {
	cfg, err := config.LoadApiConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load API configuration: %w", err)
	}

	log := logger.NewLogger(&cfg.Logging)

	return &ApiContainer{
		Container: newContainer(cfg.Database, cfg.Mongo, cfg.Redis, log),
		config:    cfg,
	}, nil
}

// NewIngestorContainer creates a new container for the ingestor service
func NewIngestorContainer() (*IngestorContainer, error) {
	cfg, err := config.LoadIngestorConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load ingestor configuration: %w", err)
	}

	log := logger.NewLogger(&cfg.Logging)

	return &IngestorContainer{
		Container: newContainer(cfg.Database, cfg.Mongo, cfg.Redis, log),
		config:    cfg,
	}, nil
}

// GetConfig returns the API configuration
func (c *ApiContainer) GetConfig() *config.Config {
	return c.config
}

// GetConfig returns the ingestor configuration
func (c *IngestorContainer) GetConfig() *config.IngestorConfig {
	return c.config
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.logger
}

// GetDatabase returns the PostgreSQL connection, opening it on first use
func (c *Container) GetDatabase() (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	db, err := sql.Open("postgres", c.dbCfg.GetDatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("unable to open PostgreSQL connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(c.dbCfg.MaxConns)
	db.SetMaxIdleConns(c.dbCfg.MinConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	c.db = db
	c.cleanupFuncs = append(c.cleanupFuncs, db.Close)
	return c.db, nil
}

// GetMongoClient returns the MongoDB client, connecting on first use
func (c *Container) GetMongoClient() (*mongo.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mongoClient != nil {
		return c.mongoClient, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.mongoCfg.Timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(c.mongoCfg.URI).
		SetServerSelectionTimeout(c.mongoCfg.Timeout).
		SetConnectTimeout(c.mongoCfg.Timeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("unable to ping MongoDB: %w", err)
	}

	c.mongoClient = client
	c.cleanupFuncs = append(c.cleanupFuncs, func() error {
		return client.Disconnect(context.Background())
	})
	return c.mongoClient, nil
}

// GetRedisClient returns the Redis client, connecting on first use
func (c *Container) GetRedisClient() (*redis.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.redisClient != nil {
		return c.redisClient, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.redisCfg.Addr,
		Password: c.redisCfg.Password,
		DB:       c.redisCfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to ping Redis: %w", err)
	}

	c.redisClient = client
	c.cleanupFuncs = append(c.cleanupFuncs, client.Close)
	return c.redisClient, nil
}

// AddCleanupFunc adds a cleanup function
func (c *Container) AddCleanupFunc(fn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanupFuncs = append(c.cleanupFuncs, fn)
}

// Shutdown gracefully shuts down the container and all its dependencies
func (c *Container) Shutdown(ctx context.Context) error {
	c.logger.Info("Shutting down container...")

	c.mu.Lock()
	defer c.mu.Unlock()

	// Execute cleanup functions in reverse order
	for i := len(c.cleanupFuncs) - 1; i >= 0; i-- {
		if err := c.cleanupFuncs[i](); err != nil {
			c.logger.ErrorWithError(err, "Error during cleanup")
		}
	}
	c.cleanupFuncs = nil

	c.logger.Info("Container shutdown complete")
	return nil
}
