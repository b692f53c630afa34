package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardra-p/Sustainability-Board-Game/internal/api"
	"github.com/ardra-p/Sustainability-Board-Game/internal/config"
	"github.com/ardra-p/Sustainability-Board-Game/internal/database"
	"github.com/ardra-p/Sustainability-Board-Game/internal/game"
	"github.com/ardra-p/Sustainability-Board-Game/internal/handler"
	"github.com/ardra-p/Sustainability-Board-Game/internal/logger"
	"github.com/ardra-p/Sustainability-Board-Game/internal/middleware"
	"github.com/ardra-p/Sustainability-Board-Game/internal/store"
	"github.com/ardra-p/Sustainability-Board-Game/internal/uploads"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	pool, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, pool); err != nil {
		cancel()
		logger.Error("Schema bootstrap failed: %v", err)
		os.Exit(1)
	}
	cancel()
	logger.Success("Connected to PostgreSQL")

	// Cloudinary si configuré, sinon archivage local des photos de preuve.
	var artifacts uploads.Artifacts
	if cloud, err := uploads.NewCloudinary(cfg); err == nil {
		artifacts = cloud
		logger.Info("Proof photos stored on Cloudinary")
	} else {
		disk, err := uploads.NewDisk(cfg.UploadDir)
		if err != nil {
			logger.Error("Could not prepare upload directory: %v", err)
			os.Exit(1)
		}
		artifacts = disk
		logger.Info("Proof photos stored under %s", cfg.UploadDir)
	}

	st := store.NewPostgres(pool)
	engine := game.NewEngine(st, artifacts)
	h := handler.New(st, engine)

	router := api.SetupRouter(h, st)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.CORS(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Success("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Warning("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown: %v", err)
	}
	logger.Success("Server stopped")
}
