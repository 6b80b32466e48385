package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DenGolivets/tracker-api/internal/api"
	"github.com/DenGolivets/tracker-api/internal/config"
	"github.com/DenGolivets/tracker-api/internal/logger"
	"github.com/DenGolivets/tracker-api/internal/provider/fatsecret"
	"github.com/DenGolivets/tracker-api/internal/repository/mongo"
	"github.com/DenGolivets/tracker-api/internal/service"
	"github.com/DenGolivets/tracker-api/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("could not load config: " + err.Error())
	}

	log := logger.New(cfg.Server.Environment)
	defer log.Sync() //nolint:errcheck

	log.Info("starting tracker api", zap.String("environment", cfg.Server.Environment))

	// --- Database ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info("database connection established", zap.String("db", cfg.Database.Name))

	// --- Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureUserIndexes(ctx, appDB.Collection("users")); err != nil {
			log.Warn("failed to create user indexes", zap.Error(err))
		}
		if err := mongo.EnsureDailyLogIndexes(ctx, appDB.Collection("daily_logs")); err != nil {
			log.Warn("failed to create daily log indexes", zap.Error(err))
		}
	}()

	// --- Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, log)
	if err != nil {
		log.Fatal("failed to initialize S3 storage", zap.Error(err))
	}

	// --- Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	logRepo := mongo.NewMongoDailyLogRepository(appDB)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	userService := service.NewUserService(userRepo)
	statsService := service.NewStatsService(userRepo, logRepo, log)
	logService, err := service.NewLogService(logRepo, log)
	if err != nil {
		log.Fatal("failed to initialize log service", zap.Error(err))
	}
	planService, err := service.NewPlanService(userRepo, cfg.AI, log)
	if err != nil {
		log.Fatal("failed to initialize plan service", zap.Error(err))
	}
	exportService := service.NewExportService(logRepo, fileStorage, log)
	foodClient := fatsecret.New(cfg.FatSecret)

	// --- Router ---
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	api.SetupRoutes(
		router,
		cfg.JWT.Secret,
		cfg.Water.ContainerLiters,
		authService,
		userService,
		planService,
		statsService,
		logService,
		exportService,
		foodClient,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen and serve error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
