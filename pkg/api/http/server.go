package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/aescanero/videohub/internal/application/catalog"
	"github.com/aescanero/videohub/pkg/ports"
)

// Server represents the HTTP API server
type Server struct {
	router  *gin.Engine
	server  *http.Server
	catalog *catalog.Service
	metrics ports.MetricsCollector
	logger  *zap.Logger
}

// Config holds HTTP server configuration
type Config struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	Catalog           *catalog.Service
	Metrics           ports.MetricsCollector
	Gatherer          prometheus.Gatherer
	Logger            *zap.Logger
}

// StreamHandler serves the live change feed
type StreamHandler interface {
	HandleVideoStream(c *gin.Context)
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(cfg.Logger))
	router.Use(requestMetrics(cfg.Metrics))
	router.Use(corsMiddleware())

	s := &Server{
		router:  router,
		catalog: cfg.Catalog,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}

	s.setupRoutes(cfg.Gatherer)

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	return s
}

// setupRoutes configures API routes
func (s *Server) setupRoutes(gatherer prometheus.Gatherer) {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// Metrics
	if gatherer != nil {
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	videos := s.router.Group("/videos")
	{
		videos.GET("", s.handleListVideos)
		videos.POST("", s.handleCreateVideo)
		videos.GET("/:id", s.handleGetVideo)
		videos.PUT("/:id", s.handleUpdateVideo)
		videos.DELETE("/:id", s.handleDeleteVideo)
	}

	s.router.DELETE("/testing/all-data", s.handleDeleteAllData)
}

// SetupWebSocket mounts the live change feed
func (s *Server) SetupWebSocket(handler StreamHandler) {
	s.router.GET("/ws/videos", handler.HandleVideoStream)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server shut down complete")
	return nil
}
