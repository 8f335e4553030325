package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackdede/carbura/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}
