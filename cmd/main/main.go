package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"stock-ticker/src/config"
	"stock-ticker/src/logger"
	"stock-ticker/src/pipeline"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	config, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(config.MConfig, config.Name)

	// Setup components
	p, err := pipeline.Build(config.MConfig, appLogger)
	if err != nil {
		appLogger.Critical("Failed to build pipeline: %v", err)
	}

	servers, err := startServers(config.MConfig, p, appLogger)
	if err != nil {
		appLogger.Critical("Failed to start servers: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		appLogger.Info("Received %s, shutting down...", sig)
	case err := <-servers.errs:
		appLogger.Error("Server failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	servers.stop(ctx)

	appLogger.Info("Shutdown complete.")
}
