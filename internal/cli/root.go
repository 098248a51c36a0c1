// Package cli implements the changelog-md command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog-md/internal/build"
	"github.com/ariel-frischer/changelog-md/internal/config"
	"github.com/ariel-frischer/changelog-md/internal/errors"
)

// Command group IDs for organizing help output
const (
	GroupGettingStarted = "getting-started"
	GroupEditing        = "editing"
	GroupOutput         = "output"
	GroupConfiguration  = "configuration"
)

var rootCmd = &cobra.Command{
	Use:   "changelog-md",
	Short: "Maintain your changelog as structured data",
	Long: `changelog-md keeps your project changelog in a structured source file
(YAML, TOML, or JSON) and renders it to Markdown.

The source document follows the Keep a Changelog conventions: an
unreleased section plus released versions, each with added / changed /
deprecated / removed / fixed / security entries. Rendering produces a
CHANGELOG.md with versions in descending order and a Revisions section
linking each release to its repository comparison view.

See https://github.com/ariel-frischer/changelog-md for documentation.`,
	Example: `  changelog-md init                      # Seed CHANGELOG.yml in the current directory
  changelog-md add fixed "Fix crash on empty input"
  changelog-md release 1.2.0             # Cut a release from unreleased changes
  changelog-md render                    # Write CHANGELOG.md
  changelog-md validate                  # Check the source against the schema
  changelog-md convert --format toml     # Switch serialization format`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", build.Version, build.Commit, build.BuildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("file", "f", "", "CHANGELOG source file (default: autodetect CHANGELOG.{yml,yaml,toml,json})")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file path (default: .changelog-md.yml)")
	rootCmd.PersistentFlags().Bool("plain", false, "Disable colored output")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupGettingStarted, Title: "Getting Started:"},
		&cobra.Group{ID: GroupEditing, Title: "Editing:"},
		&cobra.Group{ID: GroupOutput, Title: "Output:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"},
	)
}

// Execute runs the root command. Errors are formatted with category
// and remediation guidance before the process exits.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	cliErr := errors.AsCLIError(err)
	if cliErr == nil {
		cliErr = errors.Wrap(err, errors.Runtime)
	}

	if plain, _ := rootCmd.PersistentFlags().GetBool("plain"); plain {
		fmt.Fprintln(os.Stderr, errors.FormatErrorPlain(cliErr))
	} else {
		errors.PrintError(cliErr)
	}
	return err
}

// loadConfig loads the tool configuration, honoring the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadWithOptions(config.LoadOptions{ProjectConfigPath: path})
	if err != nil {
		return nil, errors.Wrap(err, errors.Prerequisite,
			"Check the config file syntax",
			"Run 'changelog-md init' to start fresh")
	}
	return cfg, nil
}
