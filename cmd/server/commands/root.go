// Package commands implements the CLI for the dashboard server and its
// management operations.
package commands

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"m365-dashboard/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "m365-dashboard",
	Short: "Microsoft 365 timesheet dashboard service",
	Long: `The dashboard service reads timesheet data from SharePoint through
Microsoft Graph and serves it as a JSON API.

"serve" runs the full container startup sequence (data directory, database
file, migrations, static assets, admin seed) before listening. The individual
steps are also available as standalone commands for operators.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(bootstrapCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(collectStaticCmd)
	rootCmd.AddCommand(createAdminCmd)
}

// loadConfig loads the environment configuration and applies the logger
// settings, shared by every subcommand.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	initLogger(cfg)
	return cfg, nil
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if cfg.Server.Debug && level < log.DebugLevel {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
