// Package api exposes the classification engine over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mdr-device-classifier/internal/catalog"
	"github.com/mdr-device-classifier/internal/config"
	"github.com/mdr-device-classifier/internal/domain"
)

// Server represents the HTTP server
type Server struct {
	configManager *config.Manager
	log           *logrus.Logger
	classifier    domain.Classifier
	validator     domain.StepValidator
	provider      *catalog.Provider
	store         domain.RunStore
	router        *gin.Engine
	server        *http.Server
}

// NewServer creates a new HTTP server instance. store may be nil when the
// history driver is "none".
func NewServer(
	configManager *config.Manager,
	log *logrus.Logger,
	classifier domain.Classifier,
	validator domain.StepValidator,
	provider *catalog.Provider,
	store domain.RunStore,
) *Server {
	cfg := configManager.GetConfig()

	// Set Gin mode based on environment
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	if cfg.RateLimit.Enabled {
		router.Use(rateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}

	server := &Server{
		configManager: configManager,
		log:           log,
		classifier:    classifier,
		validator:     validator,
		provider:      provider,
		store:         store,
		router:        router,
	}

	// Setup routes
	server.setupRoutes()

	return server
}

// Router exposes the gin engine, primarily for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server and blocks until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.configManager.GetConfig().Server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	s.log.WithField("address", addr).Info("HTTP server started")

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.log.Info("Shutting down HTTP server")
	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.GET("/health", s.handleHealth)

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/classify", s.handleClassify)
		v1.POST("/steps/:step/validate", s.handleValidateStep)
		v1.GET("/rules", s.handleListRules)
		v1.GET("/classifications", s.handleListClassifications)
		v1.GET("/classifications/:id", s.handleGetClassification)
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"timestamp":       time.Now().UTC(),
		"catalog_version": s.provider.Current().Version,
	})
}
