package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog-md/internal/changelog"
	"github.com/ariel-frischer/changelog-md/internal/errors"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [destination]",
	Short: "Print the changelog JSON Schema",
	Long: `Print the JSON Schema that CHANGELOG source documents are validated
against. With a destination argument the schema is written to that
file instead of stdout.`,
	Example: `  changelog-md schema
  changelog-md schema changelog.schema.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
}

func init() {
	schemaCmd.GroupID = GroupOutput
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	schema := changelog.Schema()

	if len(args) == 1 {
		if err := os.WriteFile(args[0], schema, 0o644); err != nil {
			return errors.Wrap(fmt.Errorf("writing %s: %w", args[0], err), errors.Runtime)
		}
		return nil
	}

	_, err := cmd.OutOrStdout().Write(schema)
	return err
}
