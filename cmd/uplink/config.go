package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect uplink configuration",
	Long:  `View the configuration uplink reads from the environment and .env files.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration in JSON format with secrets masked.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		// Convert config to JSON with indentation
		data, err := json.MarshalIndent(cfg.Redacted(), "", "  ")
		if err != nil {
			logger.Error("Failed to marshal config: %v", err)
			os.Exit(1)
		}

		fmt.Println(string(data))
	},
}

// initConfigCommands sets up all config-related commands
func initConfigCommands() {
	configCmd.AddCommand(configShowCmd)
}
