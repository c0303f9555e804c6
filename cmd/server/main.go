package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/osa911/uplink/internal/config"
	"github.com/osa911/uplink/internal/logging"
	"github.com/osa911/uplink/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// the logger needs the config, fall back to stderr
		logging.NewWriterLogger(os.Stderr, logging.LevelError).Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Configure and get logger
	logConfig := logging.DefaultConfig(cfg.LogFile, cfg.LogLevel)
	logConfig.LogRequests = cfg.LogRequests
	logging.Configure(logConfig)
	logger := logging.GetLogger()
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, logger); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
