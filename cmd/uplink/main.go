package main

import (
	"fmt"
	"os"

	"github.com/osa911/uplink/internal/config"
	"github.com/osa911/uplink/internal/logging"
	"github.com/osa911/uplink/internal/version"

	"github.com/spf13/cobra"
)

var logger *logging.Logger

// initLogger sets up terminal logging for one-shot commands
func initLogger(level string) {
	logger = logging.NewWriterLogger(os.Stderr, level)
	logging.SetLogger(logger)
}

// loadConfig reads the environment and .env files or exits
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Error loading config: %v", err)
		os.Exit(1)
	}
	return cfg
}

var rootCmd = &cobra.Command{
	Use:   "uplink",
	Short: "uplink - contact form relay",
	Long: `uplink delivers contact form messages to an email relay.

It can send a message from the terminal, either straight through the
configured relay or through a running uplink server, and it can run the
HTTP API that backs the website's contact form.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := logging.LevelWarn
		if verbose {
			level = logging.LevelDebug
		}
		initLogger(level)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("uplink %s\n", version.Info())
	},
}

func main() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().String("lang", "", "Language for messages (en, es); defaults to $LANG")
	rootCmd.PersistentFlags().String("server", "", "Base URL of an uplink server; when empty the relay is called directly")

	initSendCommand()
	initConfigCommands()

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
