package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var yankCmd = &cobra.Command{
	Use:   "yank <version>",
	Short: "Mark a release as yanked",
	Long: `Mark an existing release as yanked. The rendered Markdown shows a
[YANKED] marker with the reason next to the version heading.`,
	Example: `  changelog-md yank 1.2.0 --reason "Broken migration in this build"
  changelog-md yank 1.2.0`,
	Args: cobra.ExactArgs(1),
	RunE: runYank,
}

func init() {
	yankCmd.GroupID = GroupEditing
	yankCmd.Flags().String("reason", "", "Why the release was yanked")
	rootCmd.AddCommand(yankCmd)
}

func runYank(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	doc, path, err := loadSource(cmd, cfg)
	if err != nil {
		return err
	}

	version := args[0]
	reason, _ := cmd.Flags().GetString("reason")

	if err := doc.Yank(version, reason); err != nil {
		return wrapMutationError(err)
	}
	if err := saveSource(path, doc, cfg.Pretty); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Yanked %s in %s\n", version, path)
	return nil
}
