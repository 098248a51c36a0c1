package changelog

// GetRelease retrieves a release by its version identifier.
// Returns UnknownVersionError if the identifier doesn't exist.
func (c *Changelog) GetRelease(version string) (*Release, error) {
	rel, ok := c.Versions[version]
	if !ok {
		return nil, &UnknownVersionError{
			Version:   version,
			Available: sortedVersions(c),
		}
	}
	return &rel, nil
}

// ListVersions returns all version identifiers, newest first.
func (c *Changelog) ListVersions() []string {
	return sortedVersions(c)
}

// LatestRelease returns the identifier of the newest release, or ""
// if nothing has been released yet.
func (c *Changelog) LatestRelease() string {
	versions := sortedVersions(c)
	if len(versions) == 0 {
		return ""
	}
	return versions[0]
}

// AllEntries returns a flattened view of every change line: unreleased
// first, then releases newest first, categories in display order
// within each version.
func (c *Changelog) AllEntries() []Entry {
	entries := c.Unreleased.Entries("unreleased")
	for _, version := range sortedVersions(c) {
		entries = append(entries, c.Versions[version].Changes.Entries(version)...)
	}
	return entries
}

// LastEntries returns up to n entries from AllEntries.
func (c *Changelog) LastEntries(n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}
	entries := c.AllEntries()
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// EntryCount returns the total number of change lines in the document,
// unreleased included.
func (c *Changelog) EntryCount() int {
	count := c.Unreleased.Count()
	for _, rel := range c.Versions {
		count += rel.Changes.Count()
	}
	return count
}
