package server

import (
	"context"
	"fmt"
	"time"

	"github.com/osa911/uplink/internal/config"
	"github.com/osa911/uplink/internal/logging"
	"github.com/osa911/uplink/internal/relay"
	"github.com/osa911/uplink/internal/telemetry"
	"github.com/osa911/uplink/internal/version"
)

// Run builds the relay and tracing from cfg and serves until ctx is done
func Run(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	logger.Info("Starting uplink %s in %s mode", version.Info(), cfg.Environment)

	shutdownTracing, err := telemetry.Init(ctx, cfg.OTLPEndpoint, version.Version, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("Failed to flush traces: %v", err)
		}
	}()

	r, err := relay.New(cfg, logger)
	if err != nil {
		return logging.WrapError(err, "failed to create relay")
	}
	if cfg.RelayProvider == config.RelayLog {
		logger.Warn("Using the log relay, messages are only written to the log")
	}

	return NewServer(cfg, r, logger).Start(ctx)
}
