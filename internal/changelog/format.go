package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// categoryStyle defines the color and icon for a changelog category in
// terminal output.
type categoryStyle struct {
	color *color.Color
	icon  string
}

var categoryStyles = map[string]categoryStyle{
	"added":      {color: color.New(color.FgGreen), icon: "✓"},
	"changed":    {color: color.New(color.FgBlue), icon: "~"},
	"deprecated": {color: color.New(color.FgRed), icon: "⚠"},
	"removed":    {color: color.New(color.FgRed), icon: "✗"},
	"fixed":      {color: color.New(color.FgYellow), icon: "⚡"},
	"security":   {color: color.New(color.FgMagenta), icon: "🔒"},
}

// FormatOptions controls terminal output formatting.
type FormatOptions struct {
	Plain    bool // disable colors and icons
	MaxWidth int  // maximum line width (0 = auto-detect)
}

// FormatEntries writes change entries to the writer with terminal
// styling, grouped by version with color-coded category headers. The
// document supplies release dates for the version headers.
func FormatEntries(c *Changelog, entries []Entry, w io.Writer, opts FormatOptions) error {
	if len(entries) == 0 {
		return nil
	}

	width := resolveWidth(opts.MaxWidth)

	first := true
	for _, group := range groupByVersion(entries) {
		if !first {
			fmt.Fprintln(w)
		}
		first = false

		if err := writeVersionHeader(c, group.version, w, opts); err != nil {
			return fmt.Errorf("formatting version %s: %w", group.version, err)
		}
		if err := writeVersionEntries(group.entries, w, opts, width); err != nil {
			return fmt.Errorf("formatting version %s: %w", group.version, err)
		}
	}

	return nil
}

type versionGroup struct {
	version string
	entries []Entry
}

// groupByVersion groups entries by version, preserving input order.
func groupByVersion(entries []Entry) []versionGroup {
	var groups []versionGroup
	for _, e := range entries {
		if len(groups) == 0 || groups[len(groups)-1].version != e.Version {
			groups = append(groups, versionGroup{version: e.Version})
		}
		last := &groups[len(groups)-1]
		last.entries = append(last.entries, e)
	}
	return groups
}

// writeVersionHeader writes the version heading, including the release
// date and yanked marker when the document knows the version.
func writeVersionHeader(c *Changelog, version string, w io.Writer, opts FormatOptions) error {
	header := version
	if version == "unreleased" {
		header = "Unreleased"
	} else if rel, ok := c.Versions[version]; ok {
		header = fmt.Sprintf("%s (%s)", version, rel.Date)
		if rel.Yanked != nil {
			header += " [YANKED]"
		}
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeVersionEntries writes one version's entries grouped by category
// in display order.
func writeVersionEntries(entries []Entry, w io.Writer, opts FormatOptions, width int) error {
	byCategory := make(map[string][]Entry)
	for _, e := range entries {
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}

	for _, category := range ValidCategories() {
		group, ok := byCategory[category]
		if !ok {
			continue
		}
		if err := writeCategoryHeader(category, w, opts); err != nil {
			return err
		}
		for _, entry := range group {
			if err := writeEntry(entry, w, opts, width); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeCategoryHeader(category string, w io.Writer, opts FormatOptions) error {
	displayName := displayNames[category]

	if opts.Plain {
		_, err := fmt.Fprintf(w, "\n### %s\n", displayName)
		return err
	}

	style := categoryStyles[category]
	colored := style.color.SprintFunc()
	_, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.icon), colored(displayName))
	return err
}

func writeEntry(entry Entry, w io.Writer, opts FormatOptions, width int) error {
	const prefix = "  - "

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, entry.Text)
		return err
	}

	wrapped := wrapText(entry.Text, width-len(prefix), "    ")
	colored := categoryStyles[entry.Category].color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth runes, using indent for
// continuation lines. Break points are chosen per rune so multibyte
// text never gets split mid-character.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || utf8.RuneCountInString(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := []rune(text)

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}
		lines = append(lines, string(remaining[:breakPoint]))
		remaining = remaining[breakPoint:]
		for len(remaining) > 0 && remaining[0] == ' ' {
			remaining = remaining[1:]
		}
	}
	if len(remaining) > 0 {
		lines = append(lines, string(remaining))
	}

	return strings.Join(lines, "\n"+indent)
}
