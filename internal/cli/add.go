package cli

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog-md/internal/changelog"
	"github.com/ariel-frischer/changelog-md/internal/errors"
)

var addCmd = &cobra.Command{
	Use:   "add <category> <text>...",
	Short: "Add a change entry to the unreleased section",
	Long: `Add a change entry to the unreleased section of the changelog.

The category must be one of the Keep a Changelog categories: added,
changed, deprecated, removed, fixed, or security. Remaining arguments
are joined into the entry text.`,
	Example: `  changelog-md add added "Support TOML sources"
  changelog-md add fixed Fix crash on empty input`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAdd,
}

func init() {
	addCmd.GroupID = GroupEditing
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	doc, path, err := loadSource(cmd, cfg)
	if err != nil {
		return err
	}

	category := strings.ToLower(args[0])
	text := strings.Join(args[1:], " ")

	if err := doc.Add(category, text); err != nil {
		return wrapMutationError(err)
	}
	if err := saveSource(path, doc, cfg.Pretty); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Added %s entry to %s\n", category, path)
	return nil
}

// wrapMutationError converts typed mutation failures into categorized
// CLI errors.
func wrapMutationError(err error) error {
	var dup *changelog.DuplicateVersionError
	if stderrors.As(err, &dup) {
		return errors.WrapWithMessage(err, errors.Argument,
			fmt.Sprintf("version %s already exists", dup.Version),
			"Pick an unused version identifier",
			"Run 'changelog-md show' to list existing versions")
	}

	var unknown *changelog.UnknownVersionError
	if stderrors.As(err, &unknown) {
		remediation := []string{"Run 'changelog-md show' to list existing versions"}
		if len(unknown.Available) > 0 {
			remediation = append(remediation,
				fmt.Sprintf("Known versions: %s", strings.Join(unknown.Available, ", ")))
		}
		return errors.WrapWithMessage(err, errors.Argument,
			fmt.Sprintf("version %s does not exist", unknown.Version),
			remediation...)
	}

	return errors.Wrap(err, errors.Argument)
}
