package main

import (
	"context"

	"stock-ticker/src/grpc_control"
	"stock-ticker/src/logger"
	"stock-ticker/src/models"
	"stock-ticker/src/pipeline"
	"stock-ticker/src/server"
)

type runningServers struct {
	web    *server.WebServer
	health *grpc_control.ControlService
	errs   chan error
	logger *logger.Logger
}

// -----------------------------------------------------------------------------

// startServers launches the web server and, when grpc_port is set, the health service.
func startServers(config *models.MConfig, p *pipeline.Pipeline, appLogger *logger.Logger) (*runningServers, error) {
	web, err := server.NewWebServer(config, p, appLogger.Named("WebServer"))
	if err != nil {
		return nil, err
	}

	rs := &runningServers{
		web:    web,
		errs:   make(chan error, 2),
		logger: appLogger,
	}

	// 1. Web server
	go func() {
		if err := web.Start(); err != nil {
			rs.errs <- err
		}
	}()

	// 2. gRPC health service
	if config.GrpcPort != 0 {
		rs.health = grpc_control.NewControlService(config, appLogger.Named("HealthService"))
		go func() {
			if err := rs.health.Start(); err != nil {
				rs.errs <- err
			}
		}()
		rs.health.SetServing(true)
	}

	return rs, nil
}

// -----------------------------------------------------------------------------

func (rs *runningServers) stop(ctx context.Context) {
	if rs.health != nil {
		rs.health.Stop(ctx)
	}
	if err := rs.web.Stop(ctx); err != nil {
		rs.logger.Error("Web server shutdown: %v", err)
	}
}
