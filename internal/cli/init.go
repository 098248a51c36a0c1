package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog-md/internal/changelog"
	"github.com/ariel-frischer/changelog-md/internal/errors"
	"github.com/ariel-frischer/changelog-md/internal/gitrepo"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an initial CHANGELOG source file",
	Long: `Create an initial CHANGELOG source document in the current directory.

The repository URL is taken from the --repository flag, the config
file, or the origin remote of the enclosing git repository, in that
order. When none is available a placeholder URL is written for you to
edit.`,
	Example: `  changelog-md init                  # Write CHANGELOG.yml
  changelog-md init --format toml    # Write CHANGELOG.toml
  changelog-md init --force          # Overwrite an existing file`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.GroupID = GroupGettingStarted
	initCmd.Flags().String("format", "", "Source format: yaml, toml, or json (default from config)")
	initCmd.Flags().String("repository", "", "Repository URL for the revision links")
	initCmd.Flags().Bool("force", false, "Overwrite an existing CHANGELOG file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	format, err := parseFormatFlag(cmd, cfg)
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	filename := "CHANGELOG." + format.Extension()

	if _, err := os.Stat(filename); err == nil && !force {
		return errors.NewPrerequisiteError(
			fmt.Sprintf("%s already exists", filename),
			"Pass --force to overwrite it")
	}

	repository, _ := cmd.Flags().GetString("repository")
	if repository == "" {
		repository = cfg.Repository
	}
	if repository == "" {
		detected, err := gitrepo.DetectURL(".")
		if err == nil && detected != "" {
			repository = detected
		}
	}
	if repository == "" {
		repository = changelog.DefaultRepository
	}

	seed := changelog.New(repository)
	if err := saveSource(filename, seed, cfg.Pretty); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Writing initial %s\n", filename)
	return nil
}
