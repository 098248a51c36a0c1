package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog-md/internal/changelog"
)

var releaseCmd = &cobra.Command{
	Use:   "release <version>",
	Short: "Cut a release from the unreleased changes",
	Long: `Move the unreleased changes into a new release under the given
version identifier.

The git tag defaults to the version identifier and the date to today. Semver
version identifiers keep the changelog sorted newest-first when
rendered.`,
	Example: `  changelog-md release 1.2.0
  changelog-md release 1.2.0 --tag release-1.2.0 --date 2026-08-30
  changelog-md release 1.2.0 --description "Focus on decode performance"`,
	Args: cobra.ExactArgs(1),
	RunE: runRelease,
}

func init() {
	releaseCmd.GroupID = GroupEditing
	releaseCmd.Flags().String("tag", "", "Git tag for the release (default: the version identifier)")
	releaseCmd.Flags().String("date", "", "Release date as YYYY-MM-DD (default: today)")
	releaseCmd.Flags().String("description", "", "Free-form release description")
	rootCmd.AddCommand(releaseCmd)
}

func runRelease(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	doc, path, err := loadSource(cmd, cfg)
	if err != nil {
		return err
	}

	version := args[0]
	tag, _ := cmd.Flags().GetString("tag")
	date, _ := cmd.Flags().GetString("date")
	description, _ := cmd.Flags().GetString("description")

	opts := changelog.ReleaseOptions{
		Tag:         tag,
		Date:        date,
		Description: description,
	}
	if err := doc.Release(version, opts); err != nil {
		return wrapMutationError(err)
	}
	if err := saveSource(path, doc, cfg.Pretty); err != nil {
		return err
	}

	rel, _ := doc.GetRelease(version)
	fmt.Fprintf(cmd.ErrOrStderr(), "Released %s (%s) in %s\n", version, rel.Tag, path)
	return nil
}
