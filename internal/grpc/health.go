// Package grpc serves the standard gRPC health protocol next to the HTTP API,
// so health checkers that only speak grpc.health.v1 see the same liveness as /health.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/alfagnish/demo-service/internal/logging"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServer hosts grpc.health.v1.Health on its own listener.
type HealthServer struct {
	listener   net.Listener
	grpcServer *gogrpc.Server
	health     *health.Server
	log        *slog.Logger
}

// NewHealthServer listens on addr and reports SERVING for the overall server
// ("") and for each named service.
func NewHealthServer(addr string, log *slog.Logger, services ...string) (*HealthServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	if log == nil {
		log = logging.Discard()
	}

	grpcServer := gogrpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	for _, svc := range services {
		if svc != "" {
			healthServer.SetServingStatus(svc, grpc_health_v1.HealthCheckResponse_SERVING)
		}
	}

	return &HealthServer{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		log:        log,
	}, nil
}

// Addr returns the listener address for the server.
func (s *HealthServer) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Serve blocks until ctx is cancelled or the server fails. On cancellation
// every service is flipped to NOT_SERVING before the server stops.
func (s *HealthServer) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("health server is nil")
	}

	s.log.Info("grpc.health.start", "addr", s.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	var err error
	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
		err = <-serveErr
	case err = <-serveErr:
	}

	if err == nil || errors.Is(err, gogrpc.ErrServerStopped) {
		s.log.Info("grpc.health.stopped")
		return nil
	}
	return fmt.Errorf("serve gRPC health: %w", err)
}

// Close stops the server immediately and releases the listener.
func (s *HealthServer) Close() {
	if s == nil {
		return
	}
	s.health.Shutdown()
	s.grpcServer.Stop()
	_ = s.listener.Close()
}
