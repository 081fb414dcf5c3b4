package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"gitlab.com/smartnest1/snh.energy_server/src/production/SNH.ApiService/controllers"
	"gitlab.com/smartnest1/snh.energy_server/src/production/SNH.ApiService/health"
	container "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Container"
	snhingestor "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Ingestor"
	implementation "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Repository/Implementation"

	authService "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.ApiService/implementation/auth"
	jwt "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.ApiService/implementation/jwt"
	authMiddleware "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.ApiService/middleware"
	api_models "gitlab.com/smartnest1/snh.energy_server/src/production/SNH.Models/api"
)

func main() {
	// Initialize dependency injection container
	ctr, err := container.NewApiContainer()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize container: %v", err))
	}
	defer ctr.Shutdown(context.Background())

	logger := ctr.GetLogger()
	logger.Info("Starting API Service")

	config := ctr.GetConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

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
		logger.Logger.Warn().Err(err).Msg("Redis unavailable, latest-value reads fall back to PostgreSQL")
		redisClient = nil
	}

	// Schema bootstrap
	if err := health.NewDatabaseManager(db).CreateTables(ctx); err != nil {
		logger.FatalWithError(err, "Failed to initialize database schema")
	}

	// Create repositories
	sensorRepo := implementation.NewPostgresSensorRepository(db)
	readingRepo := implementation.NewPostgresSensorReadingRepository(db)
	roomRepo := implementation.NewPostgresRoomRepository(db)
	floorRepo := implementation.NewPostgresFloorRepository(db)
	alertRepo := implementation.NewPostgresAlertRepository(db)
	interventionRepo := implementation.NewPostgresInterventionRepository(db)
	userRepo := implementation.NewPostgresUserRepository(db)
	energyRepo := implementation.NewPostgresEnergyRepository(db)
	rawReadingRepo := implementation.NewMongoRawReadingRepository(mongoClient, config.Mongo.Database, config.Mongo.Collection)

	// Manual value writes share the ingestion write path: same history
	// rows, same hot cache, same room projection.
	bus := snhingestor.NewBus()
	cache := snhingestor.NewHotCache(redisClient, config.Redis.TTL)
	writer := snhingestor.NewSensorWriter(sensorRepo, readingRepo, bus, cache, logger)
	projector := snhingestor.NewRoomProjector(sensorRepo, roomRepo, logger)
	projector.Register(bus)

	// Initialize JWT service for token validation
	jwtConfig := api_models.Config{
		SecretKey:            config.Auth.JWTSecretKey,
		AccessTokenDuration:  config.Auth.AccessTokenDuration,
		RefreshTokenDuration: config.Auth.RefreshTokenDuration,
		Issuer:               config.Auth.JWTIssuer,
	}
	jwtService := jwt.NewService(jwtConfig)

	authMiddlewareInstance := authMiddleware.NewAuthMiddleware(jwtService, authMiddleware.DefaultConfig())
	authServiceInstance := authService.NewAuthService(userRepo, jwtService, logger)

	// Bootstrap admin user
	if err := authServiceInstance.EnsureAdminUser(ctx, config.Auth.Admin.Email, config.Auth.Admin.Password); err != nil {
		logger.FatalWithError(err, "Failed to initialize admin user")
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Configure CORS from config
	corsConfig := cors.Config{
		AllowOrigins:     config.CORS.AllowedOrigins,
		AllowMethods:     config.CORS.AllowedMethods,
		AllowHeaders:     config.CORS.AllowedHeaders,
		ExposeHeaders:    config.CORS.ExposedHeaders,
		AllowCredentials: config.CORS.AllowCredentials,
		MaxAge:           time.Duration(config.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	// Create controllers and register routes
	healthChecker := health.NewHealthChecker(db, mongoClient, redisClient)

	authController := controllers.NewAuthController(authServiceInstance, logger, authMiddlewareInstance)
	sensorController := controllers.NewSensorController(sensorRepo, readingRepo, writer, cache, logger, authMiddlewareInstance)
	roomController := controllers.NewRoomController(roomRepo, logger, authMiddlewareInstance)
	floorController := controllers.NewFloorController(floorRepo, logger, authMiddlewareInstance)
	alertController := controllers.NewAlertController(alertRepo, logger, authMiddlewareInstance)
	interventionController := controllers.NewInterventionController(interventionRepo, logger, authMiddlewareInstance)
	userController := controllers.NewUserController(userRepo, authServiceInstance, logger, authMiddlewareInstance)
	energyController := controllers.NewEnergyController(energyRepo, logger, authMiddlewareInstance)
	telemetryController := controllers.NewTelemetryController(rawReadingRepo, logger, authMiddlewareInstance)
	healthController := controllers.NewHealthController(healthChecker, logger)

	authController.RegisterRoutes(router)
	sensorController.RegisterRoutes(router)
	roomController.RegisterRoutes(router)
	floorController.RegisterRoutes(router)
	alertController.RegisterRoutes(router)
	interventionController.RegisterRoutes(router)
	userController.RegisterRoutes(router)
	energyController.RegisterRoutes(router)
	telemetryController.RegisterRoutes(router)
	healthController.RegisterRoutes(router)

	port := config.Server.Port

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
		IdleTimeout:  config.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server starting on port " + port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalWithError(err, "Failed to start HTTP server")
		}
	}()

	logger.Info("API service running... press Ctrl+C to stop")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithError(err, "Server forced to shutdown")
	}
}
