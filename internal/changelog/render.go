package changelog

import (
	"fmt"
	"io"
	"strings"
)

// displayNames maps category identifiers to their Markdown headings.
var displayNames = map[string]string{
	"added":      "Added",
	"changed":    "Changed",
	"deprecated": "Deprecated",
	"removed":    "Removed",
	"fixed":      "Fixed",
	"security":   "Security",
}

// RenderMarkdown generates the Markdown changelog for the given
// document. Releases render newest first by semantic version
// precedence regardless of how they are stored; identical models
// produce byte-identical output.
func RenderMarkdown(c *Changelog, w io.Writer) error {
	if err := renderHeader(c, w); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	if !c.Unreleased.IsEmpty() {
		if _, err := fmt.Fprintf(w, "## [Unreleased]\n\n"); err != nil {
			return fmt.Errorf("rendering unreleased: %w", err)
		}
		if err := renderChanges(c.Unreleased, w); err != nil {
			return fmt.Errorf("rendering unreleased: %w", err)
		}
	}

	for _, version := range sortedVersions(c) {
		if err := renderRelease(version, c.Versions[version], w); err != nil {
			return fmt.Errorf("rendering version %s: %w", version, err)
		}
	}

	if err := renderRevisions(c, w); err != nil {
		return fmt.Errorf("rendering revisions: %w", err)
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(c *Changelog) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(c, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderHeader writes the H1 title and the project description.
func renderHeader(c *Changelog, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# %s\n\n", c.Title); err != nil {
		return err
	}
	desc := strings.TrimRight(c.Description, "\n")
	if desc == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, "%s\n\n", desc)
	return err
}

// renderRelease writes a single release section: heading with date and
// optional yanked marker, optional description, then the categories.
func renderRelease(version string, rel Release, w io.Writer) error {
	heading := fmt.Sprintf("## %s - %s", version, rel.Date)
	if rel.Yanked != nil {
		heading += fmt.Sprintf(" [YANKED] %s", *rel.Yanked)
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", heading); err != nil {
		return err
	}

	if rel.Description != nil {
		if desc := strings.TrimSpace(*rel.Description); desc != "" {
			if _, err := fmt.Fprintf(w, "%s\n\n", desc); err != nil {
				return err
			}
		}
	}

	return renderChanges(rel.Changes, w)
}

// renderChanges writes the non-empty categories in the fixed display
// order, each as an H3 heading with a bulleted list.
func renderChanges(c Changes, w io.Writer) error {
	for _, cat := range c.byCategory() {
		if len(cat.Entries) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "### %s\n\n", displayNames[cat.Name]); err != nil {
			return err
		}
		for _, entry := range cat.Entries {
			if _, err := fmt.Fprintf(w, "- %s\n", entry); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// renderRevisions writes the trailing link list comparing each release
// to its predecessor. The newest release also anchors the
// unreleased...HEAD comparison; the oldest links to its own history
// since it has nothing to diff against.
func renderRevisions(c *Changelog, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# Revisions\n\n"); err != nil {
		return err
	}

	versions := sortedVersions(c)
	if len(versions) == 0 {
		_, err := fmt.Fprintf(w, "- [unreleased] <%s/commits/>\n", c.Repository)
		return err
	}

	newest := c.Versions[versions[0]]
	if _, err := fmt.Fprintf(w, "- [unreleased] <%s/compare/%s...HEAD>\n", c.Repository, newest.Tag); err != nil {
		return err
	}

	for i := 0; i < len(versions)-1; i++ {
		cur := c.Versions[versions[i]]
		prev := c.Versions[versions[i+1]]
		if _, err := fmt.Fprintf(w, "- [%s] <%s/compare/%s..%s>\n", versions[i], c.Repository, prev.Tag, cur.Tag); err != nil {
			return err
		}
	}

	oldest := versions[len(versions)-1]
	_, err := fmt.Fprintf(w, "- [%s] <%s/commits/%s>\n", oldest, c.Repository, c.Versions[oldest].Tag)
	return err
}
