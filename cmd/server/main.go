package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"m365-dashboard/cmd/server/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
