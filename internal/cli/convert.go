package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog-md/internal/errors"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the CHANGELOG source to another format",
	Long: `Convert the CHANGELOG source file to another serialization format.

The destination is the source path with the new format's extension.
An existing destination is not overwritten unless --force is given.
The source file is left in place.`,
	Example: `  changelog-md convert --format toml
  changelog-md convert --format json --force`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	convertCmd.GroupID = GroupConfiguration
	convertCmd.Flags().String("format", "", "Target format: yaml, toml, or json (default from config)")
	convertCmd.Flags().Bool("force", false, "Overwrite an existing destination file")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	format, err := parseFormatFlag(cmd, cfg)
	if err != nil {
		return err
	}

	doc, source, err := loadSource(cmd, cfg)
	if err != nil {
		return err
	}

	destination := strings.TrimSuffix(source, filepath.Ext(source)) + "." + format.Extension()
	if destination == source {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s is already in %s format\n", source, format)
		return nil
	}

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(destination); err == nil && !force {
		return errors.NewPrerequisiteError(
			fmt.Sprintf("%s already exists", destination),
			"Pass --force to overwrite it")
	}

	if err := saveSource(destination, doc, cfg.Pretty); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Converting %s to %s\n", source, destination)
	return nil
}
