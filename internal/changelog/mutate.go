package changelog

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultYankReason is recorded when a release is yanked without an
// explicit reason.
const DefaultYankReason = "no reason given"

// datePattern mirrors the schema's date constraint.
var datePattern = regexp.MustCompile(`^\d{4}-[01]\d-[0-3]\d$`)

// Add appends a change line to the named category of the unreleased
// set, creating the category if absent.
func (c *Changelog) Add(category, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("change text cannot be empty")
	}
	return c.Unreleased.Append(category, text)
}

// ReleaseOptions carries the optional fields of a release operation.
// Zero values select the defaults: Tag defaults to the version
// identifier, Date to the current date, Description to absent.
type ReleaseOptions struct {
	Tag         string
	Date        string
	Description string

	// Now supplies the clock for the default date. Nil means time.Now.
	Now func() time.Time
}

// Release cuts a new release under the given version identifier,
// moving the current unreleased changes into it. The unreleased set is
// empty afterwards. Fails with DuplicateVersionError if the identifier
// is already in use, leaving the document unchanged.
func (c *Changelog) Release(version string, opts ReleaseOptions) error {
	if version == "" {
		return fmt.Errorf("version identifier cannot be empty")
	}
	if _, exists := c.Versions[version]; exists {
		return &DuplicateVersionError{Version: version}
	}

	tag := opts.Tag
	if tag == "" {
		tag = version
	}

	date := opts.Date
	if date == "" {
		now := opts.Now
		if now == nil {
			now = time.Now
		}
		date = now().Format("2006-01-02")
	}
	if !datePattern.MatchString(date) {
		return &ValidationError{Violations: []FieldError{{
			Field:   "versions/" + version + "/date",
			Message: fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", date),
		}}}
	}

	rel := Release{
		Tag:     tag,
		Date:    date,
		Changes: c.Unreleased,
	}
	if opts.Description != "" {
		desc := opts.Description
		rel.Description = &desc
	}

	if c.Versions == nil {
		c.Versions = map[string]Release{}
	}
	c.Versions[version] = rel
	c.Unreleased = Changes{}
	return nil
}

// Yank marks an existing release as withdrawn, recording the reason.
// An empty reason records DefaultYankReason. Fails with
// UnknownVersionError if the identifier is absent, leaving the
// document unchanged.
func (c *Changelog) Yank(version, reason string) error {
	rel, exists := c.Versions[version]
	if !exists {
		return &UnknownVersionError{
			Version:   version,
			Available: sortedVersions(c),
		}
	}

	if reason == "" {
		reason = DefaultYankReason
	}
	rel.Yanked = &reason
	c.Versions[version] = rel
	return nil
}
