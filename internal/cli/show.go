package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog-md/internal/changelog"
)

var showCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "Show change entries in the terminal",
	Long: `Show change entries with colored category headers, grouped by
version newest-first. With a version argument only that release is
shown; "unreleased" shows the pending changes.`,
	Example: `  changelog-md show
  changelog-md show 1.2.0
  changelog-md show unreleased
  changelog-md show --last 5
  changelog-md show --plain | less`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.GroupID = GroupOutput
	showCmd.Flags().IntP("last", "n", 0, "Show only the N most recent entries")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	doc, _, err := loadSource(cmd, cfg)
	if err != nil {
		return err
	}

	var entries []changelog.Entry
	switch {
	case len(args) == 1 && args[0] == "unreleased":
		entries = doc.Unreleased.Entries("unreleased")
	case len(args) == 1:
		rel, err := doc.GetRelease(args[0])
		if err != nil {
			return wrapMutationError(err)
		}
		entries = rel.Entries(args[0])
	default:
		entries = doc.AllEntries()
	}

	if last, _ := cmd.Flags().GetInt("last"); last > 0 {
		if len(entries) > last {
			entries = entries[:last]
		}
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No entries")
		return nil
	}

	plain, _ := cmd.Flags().GetBool("plain")
	opts := changelog.FormatOptions{Plain: plain}
	return changelog.FormatEntries(doc, entries, cmd.OutOrStdout(), opts)
}
