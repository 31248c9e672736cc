package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/mdr-device-classifier/internal/api"
	"github.com/mdr-device-classifier/internal/catalog"
	"github.com/mdr-device-classifier/internal/config"
	"github.com/mdr-device-classifier/internal/domain"
	"github.com/mdr-device-classifier/internal/history"
	"github.com/mdr-device-classifier/internal/service"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := newLogger(cfg.Logging)

	// Rule catalog: the builtin Annex VIII dataset, or a JSON override.
	cat := catalog.AnnexVIII()
	if cfg.Catalog.Path != "" {
		cat, err = catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load catalog file")
		}
	}
	provider, err := catalog.NewProvider(cat, logger)
	if err != nil {
		logger.WithError(err).Fatal("Invalid rule catalog")
	}

	classifier, err := service.NewClassifierService(logger, provider, cfg.Engine.ResultCacheSize)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create classifier")
	}

	store, err := newRunStore(cfg.History)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open history store")
	}
	if store != nil {
		defer store.Close()
	}

	logger.WithFields(logrus.Fields{
		"host":            cfg.Server.Host,
		"port":            cfg.Server.Port,
		"catalog_version": provider.Current().Version,
		"history_driver":  cfg.History.Driver,
	}).Info("Starting MDR device classifier server")

	// Create server
	server := api.NewServer(configManager, logger, classifier, classifier.Validator(), provider, store)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down")
		cancel()
	}()

	// Start server
	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}

	logger.Info("Server stopped")
}

func newLogger(cfg config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}

// newRunStore opens the configured history backend. A nil store means
// history is disabled.
func newRunStore(cfg config.HistoryConfig) (domain.RunStore, error) {
	switch cfg.Driver {
	case "sqlite":
		return history.NewSQLiteStore(cfg.SQLitePath)
	case "postgres":
		return history.OpenPostgres(cfg.PostgresURL)
	default:
		return nil, nil
	}
}
