package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"m365-dashboard/internal/adapters/secondary/sqlite"
	"m365-dashboard/internal/core/services"
)

var createAdminCmd = &cobra.Command{
	Use:   "createadmin",
	Short: "Create the default administrator account if it does not exist",
	Long: `Create a superuser with the configured default credentials
(ADMIN_USERNAME, ADMIN_EMAIL, ADMIN_PASSWORD). If an account with that
username already exists, nothing is created and the command still succeeds.

The defaults are insecure and must be rotated in any real deployment.`,
	RunE: runCreateAdmin,
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := sqlite.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	users := services.NewUserService(sqlite.NewUserRepository(db))
	created, err := users.EnsureAdmin(cmd.Context(), cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		return err
	}

	if created {
		fmt.Printf("Superuser %q created\n", cfg.Admin.Username)
	} else {
		fmt.Printf("Superuser %q already exists\n", cfg.Admin.Username)
	}
	return nil
}
