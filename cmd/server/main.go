package main

import (
	"alcyxob/liftlog/internal/api"
	"alcyxob/liftlog/internal/config"
	"alcyxob/liftlog/internal/logging"
	"alcyxob/liftlog/internal/metrics"
	"alcyxob/liftlog/internal/repository/mongo"
	"alcyxob/liftlog/internal/service"
	"alcyxob/liftlog/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
)

// @title Liftlog API
// @version 1.0
// @description Personal workout log: entries, progress series and CSV exports.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %s", err)
	}

	logging.Setup(logging.Params{
		Level:      cfg.Log.Level,
		FormatJSON: cfg.Log.JSON,
		FileName:   cfg.Log.File,
		ToStdout:   cfg.Log.Stdout,
	})
	log.Infoln("starting liftlog server ...")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("could not connect to MongoDB: %s", err)
	}
	defer func() {
		log.Infoln("disconnecting MongoDB ...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Errorf("failed to disconnect MongoDB: %s", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Infof("connected to database %s", cfg.Database.Name)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB)
	}()

	// --- Export archive (optional) ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			log.Fatalf("failed to initialize S3 storage: %s", err)
		}
	} else {
		log.Infoln("export archive disabled")
	}

	if err := os.MkdirAll(cfg.Export.Dir, 0o750); err != nil {
		log.Fatalf("create export dir %s: %s", cfg.Export.Dir, err)
	}

	// --- Repositories & Services ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	exportRepo := mongo.NewMongoExportRepository(appDB)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	workoutService := service.NewWorkoutService(userRepo, workoutRepo)
	exportService := service.NewExportService(workoutRepo, exportRepo, fileStorage, cfg.Export.Dir)

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsManager := metrics.NewManager("liftlog", "server", registry)

	// --- HTTP ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, cfg.JWT.Secret, metricsManager, registry, authService, workoutService, exportService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen and serve: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Infoln("shutting down server ...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %s", err)
	}

	log.Infoln("server exiting")
}
