package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bid-labs/ticketgen/internal/interfaces/cli/catalog"
	"github.com/bid-labs/ticketgen/internal/interfaces/cli/export"
	"github.com/bid-labs/ticketgen/internal/interfaces/cli/extract"
	"github.com/bid-labs/ticketgen/internal/interfaces/cli/migrate"
	"github.com/bid-labs/ticketgen/internal/interfaces/cli/server"
	"github.com/bid-labs/ticketgen/internal/interfaces/cli/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "ticketgen",
		Short:        "Ticketgen - QA test ticket generator",
		Long:         `Ticketgen reads test request workbooks, validates them against the client and project catalogs, and issues sequential ticket codes.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		catalog.NewCommand(),
		export.NewCommand(),
		extract.NewCommand(),
		version.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
