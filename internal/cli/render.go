package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog-md/internal/changelog"
	"github.com/ariel-frischer/changelog-md/internal/errors"
)

var renderCmd = &cobra.Command{
	Use:   "render [destination]",
	Short: "Render the CHANGELOG source to Markdown",
	Long: `Render the CHANGELOG source to a Markdown file.

The destination defaults to the source path with a .md extension.
With --watch the command keeps running and re-renders whenever the
source file changes.`,
	Example: `  changelog-md render                    # CHANGELOG.yml -> CHANGELOG.md
  changelog-md render docs/CHANGELOG.md
  changelog-md render --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.GroupID = GroupOutput
	renderCmd.Flags().BoolP("watch", "w", false, "Re-render whenever the source changes")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	source, err := resolveSource(cmd, cfg)
	if err != nil {
		return err
	}

	destination := strings.TrimSuffix(source, filepath.Ext(source)) + ".md"
	if len(args) == 1 {
		destination = args[0]
	}

	if err := renderOnce(cmd, source, destination); err != nil {
		return err
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		return watchAndRender(cmd, source, destination)
	}
	return nil
}

// renderOnce loads, renders, and writes the Markdown output.
func renderOnce(cmd *cobra.Command, source, destination string) error {
	doc, err := changelog.LoadPath(source)
	if err != nil {
		return wrapLoadError(err, source)
	}

	rendered, err := changelog.RenderMarkdownString(doc)
	if err != nil {
		return errors.Wrap(err, errors.Runtime)
	}

	if err := os.WriteFile(destination, []byte(rendered), 0o644); err != nil {
		return errors.Wrap(fmt.Errorf("writing %s: %w", destination, err), errors.Runtime)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Rendering %s to %s\n", source, destination)
	return nil
}

// watchAndRender re-renders on source changes until the context is
// cancelled. Editors often replace the file on save, which drops the
// watch on the old inode, so the watch is on the parent directory and
// events are filtered by name. A short debounce coalesces the
// write-then-rename bursts editors produce.
func watchAndRender(cmd *cobra.Command, source, destination string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(fmt.Errorf("creating fsnotify watcher: %w", err), errors.Runtime)
	}
	defer watcher.Close()

	dir := filepath.Dir(source)
	if err := watcher.Add(dir); err != nil {
		return errors.Wrap(fmt.Errorf("watching %s: %w", dir, err), errors.Runtime)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes (ctrl-c to stop)\n", source)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var debounce *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(source) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(100*time.Millisecond, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			if err := renderOnce(cmd, source, destination); err != nil {
				// Report and keep watching; transient states during
				// saves produce partial reads.
				if cliErr := errors.AsCLIError(err); cliErr != nil {
					errors.FprintError(cmd.ErrOrStderr(), cliErr)
				} else {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
		}
	}
}
