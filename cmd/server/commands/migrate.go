package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"m365-dashboard/internal/adapters/secondary/sqlite"
	"m365-dashboard/internal/bootstrap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Apply pending schema migrations to the dashboard database. Running
against an up-to-date database is a no-op.`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := bootstrap.EnsureDataDir(cfg.Storage.DataDir); err != nil {
		return err
	}
	if err := bootstrap.EnsureDatabaseFile(cfg.Storage.DatabasePath); err != nil {
		return err
	}

	db, err := sqlite.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqlite.Migrate(db); err != nil {
		return err
	}

	fmt.Println("Migrations completed successfully")
	return nil
}
