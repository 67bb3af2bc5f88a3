package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"m365-dashboard/internal/bootstrap"
)

var collectStaticCmd = &cobra.Command{
	Use:   "collectstatic",
	Short: "Copy static assets into the static root",
	RunE:  runCollectStatic,
}

func runCollectStatic(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	copied, err := bootstrap.CollectStatic(cfg.Static.Sources, cfg.Static.Root)
	if err != nil {
		return err
	}

	fmt.Printf("%d static files copied to %s\n", copied, cfg.Static.Root)
	return nil
}
