package main

import (
	"context"
	"fmt"
	"os"

	dto "github.com/osa911/uplink/internal/api/dto/v1/contact"
	"github.com/osa911/uplink/internal/cli"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the contact details displayed next to the form",
	Run: func(cmd *cobra.Command, args []string) {
		serverURL, _ := cmd.Flags().GetString("server")

		var profile *dto.ProfileResponse
		if serverURL != "" {
			var err error
			profile, err = cli.NewClient(serverURL, resolveLang(cmd)).Profile(context.Background())
			if err != nil {
				logger.Error("Failed to fetch profile: %v", err)
				os.Exit(1)
			}
		} else {
			cfg := loadConfig()
			profile = &dto.ProfileResponse{
				Email:       cfg.DisplayEmail,
				GithubURL:   cfg.GithubURL,
				LinkedinURL: cfg.LinkedinURL,
				Location:    cfg.Location,
			}
		}

		fmt.Printf("Email:    %s\n", profile.Email)
		fmt.Printf("GitHub:   %s\n", profile.GithubURL)
		fmt.Printf("LinkedIn: %s\n", profile.LinkedinURL)
		fmt.Printf("Location: %s\n", profile.Location)
	},
}
