package changelog

import (
	"fmt"
	"strings"
)

// FieldError ties a diagnostic to the document field that caused it.
// Field is a slash-separated path from the document root, for example
// "versions/1.0.0/date". An empty Field means the document as a whole.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// DecodeError reports why raw input could not be decoded into a
// Changelog. It carries every violation found, not only the first, so a
// hand-edited document can be fixed in one pass.
type DecodeError struct {
	Format     Format
	Violations []FieldError
}

func (e *DecodeError) Error() string {
	switch len(e.Violations) {
	case 0:
		return fmt.Sprintf("invalid %s changelog", e.Format)
	case 1:
		return fmt.Sprintf("invalid %s changelog: %s", e.Format, e.Violations[0].Error())
	default:
		lines := make([]string, len(e.Violations))
		for i := range e.Violations {
			lines[i] = "  " + e.Violations[i].Error()
		}
		return fmt.Sprintf("invalid %s changelog: %d problems\n%s",
			e.Format, len(e.Violations), strings.Join(lines, "\n"))
	}
}

// ValidationError reports post-decode invariant violations found by
// Validate. Like DecodeError it aggregates every violation.
type ValidationError struct {
	Violations []FieldError
}

func (e *ValidationError) Error() string {
	switch len(e.Violations) {
	case 0:
		return "invalid changelog"
	case 1:
		return e.Violations[0].Error()
	default:
		lines := make([]string, len(e.Violations))
		for i := range e.Violations {
			lines[i] = "  " + e.Violations[i].Error()
		}
		return fmt.Sprintf("%d problems\n%s", len(e.Violations), strings.Join(lines, "\n"))
	}
}

// DuplicateVersionError is returned when a release targets a version
// identifier that already exists in the document.
type DuplicateVersionError struct {
	Version string
}

func (e *DuplicateVersionError) Error() string {
	return fmt.Sprintf("version %q already exists", e.Version)
}

// UnknownVersionError is returned when an operation targets a version
// identifier absent from the document.
type UnknownVersionError struct {
	Version   string
	Available []string
}

func (e *UnknownVersionError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("version %q not found (no versions recorded)", e.Version)
	}
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.Available, ", "))
}
