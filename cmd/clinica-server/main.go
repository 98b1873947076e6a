package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CrissP24/clinica-joya-sub000/internal/iam"
	"github.com/CrissP24/clinica-joya-sub000/internal/notification"
	"github.com/CrissP24/clinica-joya-sub000/internal/scheduling"
	"github.com/CrissP24/clinica-joya-sub000/internal/server"
	"github.com/CrissP24/clinica-joya-sub000/internal/store"
	"github.com/CrissP24/clinica-joya-sub000/pkg/config"
	"github.com/CrissP24/clinica-joya-sub000/pkg/logger"
	"github.com/CrissP24/clinica-joya-sub000/pkg/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.LogLevel)
	log.Info("Starting clinic server")

	// Open the storage backend
	backend, err := openBackend(cfg, log)
	if err != nil {
		log.WithError(err).Error("Failed to open storage backend")
		os.Exit(1)
	}
	defer backend.Close()

	// Initialize the store and seed demo data on first start
	st := store.New(backend, log)
	if cfg.Storage.SeedDemo {
		if err := st.Seed(); err != nil {
			log.WithError(err).Error("Failed to seed demo data")
			os.Exit(1)
		}
	}

	// Wire services
	notifier := notification.NewManager(st, log)
	scheduler := scheduling.New(st, notifier, cfg.Clinic, log)
	authService := iam.NewService(st, cfg.JWT, log)

	srv := server.New(cfg, st, scheduler, authService, notifier, log)

	// Start server in a goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.WithError(err).Error("HTTP server failed")
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down clinic server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
		os.Exit(1)
	}

	log.Info("Clinic server stopped")
}

// openBackend opens the key-value backend selected in the configuration
func openBackend(cfg *config.Config, log *logger.Logger) (storage.Backend, error) {
	switch cfg.Storage.Driver {
	case "memory":
		log.Info("Using in-memory storage")
		return storage.NewMemory(), nil
	case "badger":
		log.WithField("path", cfg.Storage.Path).Info("Using badger storage")
		return storage.NewBadger(cfg.Storage.Path)
	case "postgres":
		log.Info("Using postgres storage")
		return storage.NewPostgres(cfg.Storage.DSN)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}
