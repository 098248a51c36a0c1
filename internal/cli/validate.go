package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the CHANGELOG source against the schema",
	Long: `Decode the CHANGELOG source and check it against the changelog
schema. All violations are reported with their field paths, so one
run surfaces every problem in the document.`,
	Example: `  changelog-md validate
  changelog-md validate --file docs/CHANGELOG.toml`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.GroupID = GroupOutput
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	_, path, err := loadSource(cmd, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: no issues found\n", path)
	return nil
}
