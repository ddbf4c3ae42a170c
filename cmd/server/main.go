package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"ecomload/internal/config"
	"ecomload/internal/handler"
	"ecomload/internal/logging"
	"ecomload/internal/port"
	mongorepo "ecomload/internal/repository/mongo"
	"ecomload/internal/repository/postgres"
	"ecomload/internal/router"
	"ecomload/internal/service"
	s3storage "ecomload/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := mongorepo.Connect(ctx, &cfg.Mongo)
	if err != nil {
		return err
	}
	store := mongorepo.NewDocumentStore(client, cfg.Mongo.Database)
	defer func() { _ = store.Close(context.Background()) }()

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	var runRepo port.RunRepository
	if cfg.Ledger.Enabled {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to ledger database: %w", err)
		}
		defer db.Close()
		runRepo = postgres.NewRunRepo(db)
	}

	// Initialize services
	reportSvc := service.NewReportService(mongorepo.NewReportRepo(client, cfg.Mongo.Database), runRepo, s3Client)

	r := router.Setup(logger, cfg.Server.AllowedOrigins, router.Handlers{
		Health: handler.NewHealthHandler(store),
		Report: handler.NewReportHandler(reportSvc),
		Run:    handler.NewRunHandler(reportSvc),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
