package changelog

import "fmt"

// Changes groups change entries by Keep a Changelog category.
// All fields are optional; empty categories are omitted when encoding
// so that hand-edited documents stay minimal and diff-stable.
// Categories follow the Keep a Changelog specification:
// https://keepachangelog.com/en/1.1.0/
type Changes struct {
	Added      []string `yaml:"added,omitempty" toml:"added,omitempty" json:"added,omitempty"`
	Changed    []string `yaml:"changed,omitempty" toml:"changed,omitempty" json:"changed,omitempty"`
	Deprecated []string `yaml:"deprecated,omitempty" toml:"deprecated,omitempty" json:"deprecated,omitempty"`
	Removed    []string `yaml:"removed,omitempty" toml:"removed,omitempty" json:"removed,omitempty"`
	Fixed      []string `yaml:"fixed,omitempty" toml:"fixed,omitempty" json:"fixed,omitempty"`
	Security   []string `yaml:"security,omitempty" toml:"security,omitempty" json:"security,omitempty"`
}

// Release represents a single finalized version entry. The version
// identifier itself is the key under Changelog.Versions, not a field here.
// Tag is the VCS tag used when synthesizing comparison links; it defaults
// to the version identifier when a release is cut. Date is an ISO date
// string (YYYY-MM-DD). Description and Yanked are optional and omitted,
// never emitted as null, when absent.
type Release struct {
	Tag         string  `yaml:"tag" toml:"tag" json:"tag"`
	Date        string  `yaml:"date" toml:"date" json:"date"`
	Description *string `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
	Yanked      *string `yaml:"yanked,omitempty" toml:"yanked,omitempty" json:"yanked,omitempty"`
	Changes     `yaml:",inline"`
}

// Changelog represents the root document of a CHANGELOG source file.
// Versions maps version identifiers to releases; the map carries no
// ordering, rendering always re-sorts by semantic version precedence.
type Changelog struct {
	Title       string             `yaml:"title" toml:"title" json:"title"`
	Description string             `yaml:"description" toml:"description" json:"description"`
	Repository  string             `yaml:"repository" toml:"repository" json:"repository"`
	Unreleased  Changes            `yaml:"unreleased" toml:"unreleased" json:"unreleased"`
	Versions    map[string]Release `yaml:"versions" toml:"versions" json:"versions"`
}

// Entry is a flattened view of a single change line, used for querying
// and terminal display where the version and category context is needed
// alongside the text.
type Entry struct {
	Text     string
	Category string
	Version  string
}

// ValidCategories returns the Keep a Changelog categories in their
// standard rendering order.
func ValidCategories() []string {
	return []string{"added", "changed", "deprecated", "removed", "fixed", "security"}
}

// IsEmpty returns true if the Changes struct has no entries in any category.
func (c Changes) IsEmpty() bool {
	return c.Count() == 0
}

// Count returns the total number of entries across all categories.
func (c Changes) Count() int {
	return len(c.Added) +
		len(c.Changed) +
		len(c.Deprecated) +
		len(c.Removed) +
		len(c.Fixed) +
		len(c.Security)
}

// Append adds text to the named category. The category must be one of
// ValidCategories.
func (c *Changes) Append(category, text string) error {
	switch category {
	case "added":
		c.Added = append(c.Added, text)
	case "changed":
		c.Changed = append(c.Changed, text)
	case "deprecated":
		c.Deprecated = append(c.Deprecated, text)
	case "removed":
		c.Removed = append(c.Removed, text)
	case "fixed":
		c.Fixed = append(c.Fixed, text)
	case "security":
		c.Security = append(c.Security, text)
	default:
		return fmt.Errorf("unknown category %q (valid: added, changed, deprecated, removed, fixed, security)", category)
	}
	return nil
}

// categorySection pairs a category name with its entries for rendering.
type categorySection struct {
	Name    string
	Entries []string
}

// byCategory returns the category slices paired with their names in the
// standard rendering order.
func (c Changes) byCategory() []categorySection {
	return []categorySection{
		{"added", c.Added},
		{"changed", c.Changed},
		{"deprecated", c.Deprecated},
		{"removed", c.Removed},
		{"fixed", c.Fixed},
		{"security", c.Security},
	}
}

// Entries returns a flattened list of all change lines in category
// order. version labels the resulting entries.
func (c Changes) Entries(version string) []Entry {
	entries := make([]Entry, 0, c.Count())
	for _, cat := range c.byCategory() {
		for _, text := range cat.Entries {
			entries = append(entries, Entry{Text: text, Category: cat.Name, Version: version})
		}
	}
	return entries
}

// normalized returns a copy with empty category slices nil'd so the
// codecs omit them, and with a non-nil Versions map so the required
// top-level key always encodes as an object.
func (c *Changelog) normalized() *Changelog {
	out := *c
	out.Unreleased = out.Unreleased.normalized()
	out.Versions = make(map[string]Release, len(c.Versions))
	for version, rel := range c.Versions {
		rel.Changes = rel.Changes.normalized()
		out.Versions[version] = rel
	}
	return &out
}

func (c Changes) normalized() Changes {
	nilIfEmpty := func(s []string) []string {
		if len(s) == 0 {
			return nil
		}
		return s
	}
	return Changes{
		Added:      nilIfEmpty(c.Added),
		Changed:    nilIfEmpty(c.Changed),
		Deprecated: nilIfEmpty(c.Deprecated),
		Removed:    nilIfEmpty(c.Removed),
		Fixed:      nilIfEmpty(c.Fixed),
		Security:   nilIfEmpty(c.Security),
	}
}
