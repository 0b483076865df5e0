package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bid-labs/ticketgen/internal/shared/version"
)

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Current()
			if info.Commit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "ticketgen %s (%s)\n", info.Version, info.Commit)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ticketgen %s\n", info.Version)
		},
	}
}
