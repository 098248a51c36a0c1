package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog-md/internal/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "changelog-md %s\n", build.Version)
		fmt.Fprintf(out, "  commit: %s\n", build.Commit)
		fmt.Fprintf(out, "  built:  %s\n", build.BuildDate)
	},
}

func init() {
	versionCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(versionCmd)
}
