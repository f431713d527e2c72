package grpc_control

import (
	"context"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"stock-ticker/src/logger"
	"stock-ticker/src/models"
)

// ServiceName is the per-service name reported next to the overall ("") status.
const ServiceName = "stockticker"

// ControlService exposes the standard gRPC health protocol for the web app.
type ControlService struct {
	Config *models.MConfig
	Logger *logger.Logger

	health     *health.Server
	grpcServer *grpc.Server
}

// NewControlService registers the health service; both statuses start NOT_SERVING.
func NewControlService(cfg *models.MConfig, log *logger.Logger) *ControlService {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	return &ControlService{
		Config:     cfg,
		Logger:     log,
		health:     hs,
		grpcServer: srv,
	}
}

// -----------------------------------------------------------------------------

// Health returns the health server, e.g. to query it in-process.
func (s *ControlService) Health() healthpb.HealthServer {
	return s.health
}

// -----------------------------------------------------------------------------

// SetServing flips both the overall and the per-service status.
func (s *ControlService) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
	s.Logger.Info("health status set to %s", status)
}

// -----------------------------------------------------------------------------

// Start listens on grpc_host:grpc_port and blocks until Stop.
func (s *ControlService) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.GrpcHost, s.Config.GrpcPort)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("grpc listen on %s: %w", addr, err)
	}
	s.Logger.Info("gRPC health service listening on %s", addr)
	return s.Serve(lis)
}

// -----------------------------------------------------------------------------

func (s *ControlService) Serve(lis net.Listener) error {
	return s.grpcServer.Serve(lis)
}

// -----------------------------------------------------------------------------

// Stop reports NOT_SERVING to watchers, then drains in-flight RPCs until ctx expires.
func (s *ControlService) Stop(ctx context.Context) {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.grpcServer.Stop()
	}
}
