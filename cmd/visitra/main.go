package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/visitra-hq/visitra/internal/interfaces/cli/migrate"
	"github.com/visitra-hq/visitra/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "visitra",
		Short: "Visitra - visitor support ticket service",
		Long:  `Visitra is the support ticket service for visitor management: complaint and suggestion intake, lifecycle tracking, and attachments.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
