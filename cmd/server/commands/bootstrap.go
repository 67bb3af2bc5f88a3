package commands

import (
	"github.com/spf13/cobra"

	"m365-dashboard/internal/bootstrap"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap [-- server-command args...]",
	Short: "Run the startup sequence, then exec the given server command",
	Long: `Run the container startup sequence (data directory, database file,
migrations, static assets, admin seed) and then replace this process with the
given server command, so the server receives the container's signals
directly.

Without a server command, bootstrap exits 0 after the sequence; this is
useful for init containers.

Examples:
  # Prepare state, then hand the PID over to an external server
  m365-dashboard bootstrap -- m365-dashboard serve

  # Init-container style: prepare state only
  m365-dashboard bootstrap`,
	RunE: runBootstrap,
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := bootstrap.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return db.Close()
	}

	// The exec below replaces the process; release the database first so no
	// file handles leak into the server.
	if err := db.Close(); err != nil {
		return err
	}
	return bootstrap.Handoff(args)
}
