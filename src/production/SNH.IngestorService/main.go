package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	container "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Container"
	snhingestor "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Ingestor"
	implementation "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Repository/Implementation"
)

func main() {
	// Initialize dependency injection container
	ctr, err := container.NewIngestorContainer()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize container: %v", err))
	}
	defer ctr.Shutdown(context.Background())

	logger := ctr.GetLogger()
	logger.Info("Starting Telemetry Ingestor Service")

	config := ctr.GetConfig()

	// Connections
	db, err := ctr.GetDatabase()
	if err != nil {
		logger.FatalWithError(err, "Failed to get database connection")
	}

	mongoClient, err := ctr.GetMongoClient()
	if err != nil {
		logger.FatalWithError(err, "Failed to connect to the raw telemetry archive")
	}

	redisClient, err := ctr.GetRedisClient()
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Redis unavailable, running without the hot cache")
		redisClient = nil
	}

	// Create repositories
	sensorRepo := implementation.NewPostgresSensorRepository(db)
	readingRepo := implementation.NewPostgresSensorReadingRepository(db)
	roomRepo := implementation.NewPostgresRoomRepository(db)
	rawReadingRepo := implementation.NewMongoRawReadingRepository(mongoClient, config.Mongo.Database, config.Mongo.Collection)

	// Assemble the pipeline: writer -> events -> room projection, then
	// the fan-out dispatcher feeding the writer.
	bus := snhingestor.NewBus()
	cache := snhingestor.NewHotCache(redisClient, config.Redis.TTL)
	writer := snhingestor.NewSensorWriter(sensorRepo, readingRepo, bus, cache, logger)
	projector := snhingestor.NewRoomProjector(sensorRepo, roomRepo, logger)
	projector.Register(bus)

	mapping := snhingestor.NewAllOfTypeMapping(sensorRepo)
	dispatcher := snhingestor.NewDispatcher(writer, mapping, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ing := snhingestor.New(config.Broker, rawReadingRepo, dispatcher, logger)
	if err := ing.Start(ctx); err != nil {
		logger.FatalWithError(err, "Failed to start telemetry ingestor")
	}

	// Start health check server
	go startHealthServer(ctr, ing)

	logger.Info("Telemetry ingestor running... press Ctrl+C to stop")

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down...")

	// Stop accepting cycles, then drain what is queued
	cancel()
	ing.Stop()
}

// startHealthServer starts a simple HTTP server for health checks
func startHealthServer(ctr *container.IngestorContainer, ing *snhingestor.Ingestor) {
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		brokerStatus := "disconnected"
		if ing.IsConnected() {
			brokerStatus = "connected"
		}

		status := "healthy"
		if brokerStatus != "connected" {
			status = "unhealthy"
		}

		w.Header().Set("Content-Type", "application/json")
		if status == "healthy" {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		fmt.Fprintf(w, `{
			"status": "%s",
			"timestamp": "%s",
			"services": {
				"broker": "%s"
			}
		}`, status, time.Now().UTC().Format(time.RFC3339), brokerStatus)
	})

	port := getEnv("INGESTOR_HEALTH_PORT", "9003")
	logger := ctr.GetLogger()
	logger.Info("Health server starting on port " + port)

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.FatalWithError(err, "Failed to start health server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
