package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/osa911/uplink/internal/logging"
	"github.com/osa911/uplink/internal/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  `Run the HTTP API backing the contact form, logging to LOG_FILE and stdout.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		// Server logs go to the rotated file like cmd/server
		logConfig := logging.DefaultConfig(cfg.LogFile, cfg.LogLevel)
		logConfig.LogRequests = cfg.LogRequests
		fileLogger, err := logging.NewLogger(logConfig)
		if err != nil {
			logger.Error("Failed to initialize logger: %v", err)
			os.Exit(1)
		}
		defer fileLogger.Close()
		logging.SetLogger(fileLogger)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := server.Run(ctx, cfg, fileLogger); err != nil {
			fileLogger.Error("%v", err)
			os.Exit(1)
		}
	},
}
