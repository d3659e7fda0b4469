package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/abduss/pdfvault/internal/config"
	"github.com/abduss/pdfvault/internal/document"
	"github.com/abduss/pdfvault/internal/logger"
	"github.com/abduss/pdfvault/internal/server"
	"github.com/abduss/pdfvault/internal/storage"
)

func main() {
	_ = godotenv.Load()

	logg, err := logger.Init()
	if err != nil {
		panic("init logger: " + err.Error())
	}
	defer logg.Sync()

	cfg, err := config.Load()
	if err != nil {
		logg.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := storage.Migrate(cfg.Postgres); err != nil {
		logg.Fatal("apply migrations", zap.Error(err))
	}

	dbPool, err := storage.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logg.Fatal("connect postgres", zap.Error(err))
	}
	defer dbPool.Close()

	repo := document.NewRepository(dbPool)

	deps := server.Dependencies{
		Config: cfg,
		DB:     dbPool,
	}

	switch cfg.Blob.Backend {
	case config.BlobBackendMinIO:
		minioClient, err := storage.NewMinIOClient(cfg.Blob.MinIO)
		if err != nil {
			logg.Fatal("connect minio", zap.Error(err))
		}
		if err := storage.EnsureBucket(ctx, minioClient, cfg.Blob.MinIO.Bucket, cfg.Blob.MinIO.Region); err != nil {
			logg.Fatal("ensure bucket", zap.Error(err))
		}
		deps.DocumentService = document.NewService(repo, document.NewMinIOStore(minioClient, cfg.Blob.MinIO.Bucket), cfg.Upload.MaxSizeBytes)
		deps.BlobCheck = func(ctx context.Context) error {
			_, err := minioClient.ListBuckets(ctx)
			return err
		}
	default:
		deps.DocumentService = document.NewService(repo, document.NewDiskStore(cfg.Blob.Dir), cfg.Upload.MaxSizeBytes)
	}

	router := server.NewRouter(deps)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logg.Info("PDF vault API listening", zap.String("address", cfg.Server.Address()))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logg.Info("shutting down gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logg.Error("shutdown error", zap.Error(err))
	}
}
