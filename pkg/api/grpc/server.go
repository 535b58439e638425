package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health check name reported for the catalog
const ServiceName = "videohub.Catalog"

// Server represents the gRPC API server
type Server struct {
	server   *grpc.Server
	listener net.Listener
	health   *health.Server
	logger   *zap.Logger
}

// Config holds gRPC server configuration
type Config struct {
	Addr   string
	Logger *zap.Logger
}

// NewServer creates a new gRPC server exposing the standard health service
func NewServer(cfg *Config) (*Server, error) {
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to create listener: %w", err)
	}

	grpcServer := grpc.NewServer()

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	return &Server{
		server:   grpcServer,
		listener: listener,
		health:   healthServer,
		logger:   cfg.Logger,
	}, nil
}

// Addr returns the bound listener address
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Start starts the gRPC server
func (s *Server) Start() error {
	s.logger.Info("starting gRPC server", zap.String("addr", s.Addr()))

	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("failed to serve gRPC: %w", err)
	}

	return nil
}

// Shutdown reports NOT_SERVING and drains in-flight calls until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down gRPC server")

	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.server.Stop()
		return fmt.Errorf("gRPC graceful stop interrupted: %w", ctx.Err())
	}

	s.logger.Info("gRPC server shut down complete")
	return nil
}
