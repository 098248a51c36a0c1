package changelog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// semverPattern matches X.Y.Z with optional pre-release and build
// metadata suffixes.
var semverPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z.-]+))?(?:\+[0-9A-Za-z.-]+)?$`)

// semver is a parsed semantic version. Build metadata is ignored for
// precedence, per the semver specification.
type semver struct {
	major, minor, patch int
	pre                 []string
}

// parseSemver parses a version identifier as a semantic version.
func parseSemver(s string) (semver, bool) {
	m := semverPattern.FindStringSubmatch(s)
	if m == nil {
		return semver{}, false
	}
	major, err1 := strconv.Atoi(m[1])
	minor, err2 := strconv.Atoi(m[2])
	patch, err3 := strconv.Atoi(m[3])
	if err1 != nil || err2 != nil || err3 != nil {
		return semver{}, false
	}
	v := semver{major: major, minor: minor, patch: patch}
	if m[4] != "" {
		v.pre = strings.Split(m[4], ".")
	}
	return v, true
}

// compare returns -1, 0, or 1 by semantic version precedence.
func (v semver) compare(o semver) int {
	if c := compareInt(v.major, o.major); c != 0 {
		return c
	}
	if c := compareInt(v.minor, o.minor); c != 0 {
		return c
	}
	if c := compareInt(v.patch, o.patch); c != 0 {
		return c
	}
	return comparePrerelease(v.pre, o.pre)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// comparePrerelease implements semver pre-release precedence: a release
// (no pre-release) ranks above any pre-release; numeric identifiers
// compare numerically and rank below alphanumeric ones; otherwise
// identifiers compare lexically, shorter lists ranking lower.
func comparePrerelease(a, b []string) int {
	switch {
	case len(a) == 0 && len(b) == 0:
		return 0
	case len(a) == 0:
		return 1
	case len(b) == 0:
		return -1
	}

	for i := 0; i < len(a) && i < len(b); i++ {
		if c := comparePreIdentifier(a[i], b[i]); c != 0 {
			return c
		}
	}
	return compareInt(len(a), len(b))
}

func comparePreIdentifier(a, b string) int {
	an, aErr := strconv.Atoi(a)
	bn, bErr := strconv.Atoi(b)
	aNumeric := aErr == nil
	bNumeric := bErr == nil
	switch {
	case aNumeric && bNumeric:
		return compareInt(an, bn)
	case aNumeric:
		return -1
	case bNumeric:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// sortVersionsDescending orders version identifiers newest first by
// semantic version precedence. Identifiers that do not parse as
// semantic versions order after every valid one, lexicographically
// among themselves. Storage order is never consulted.
func sortVersionsDescending(versions []string) {
	sort.Slice(versions, func(i, j int) bool {
		a, aOK := parseSemver(versions[i])
		b, bOK := parseSemver(versions[j])
		switch {
		case aOK && bOK:
			if c := a.compare(b); c != 0 {
				return c > 0
			}
			// Equal precedence (e.g. keys differing only in build
			// metadata): break the tie on the raw key so the order
			// never depends on map iteration.
			return versions[i] < versions[j]
		case aOK:
			return true
		case bOK:
			return false
		default:
			return versions[i] < versions[j]
		}
	})
}

// sortedVersions returns the document's version identifiers newest
// first.
func sortedVersions(c *Changelog) []string {
	versions := make([]string, 0, len(c.Versions))
	for version := range c.Versions {
		versions = append(versions, version)
	}
	sortVersionsDescending(versions)
	return versions
}
