package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelog-md/internal/changelog"
	"github.com/ariel-frischer/changelog-md/internal/config"
	"github.com/ariel-frischer/changelog-md/internal/errors"
)

// resolveSource determines the CHANGELOG source path with priority:
// --file flag > config source key > autodetection in the working
// directory.
func resolveSource(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		return path, nil
	}
	if cfg.Source != "" {
		return cfg.Source, nil
	}

	path, err := changelog.DetectSource(".")
	if err != nil {
		return "", errors.Wrap(err, errors.Runtime)
	}
	if path == "" {
		return "", errors.NewPrerequisiteError(
			"unable to find a CHANGELOG source file",
			"Run 'changelog-md init' to create one",
			"Or pass the source path with --file")
	}
	return path, nil
}

// loadSource resolves and loads the changelog, wrapping decode and IO
// failures with category and remediation for terminal presentation.
func loadSource(cmd *cobra.Command, cfg *config.Config) (*changelog.Changelog, string, error) {
	path, err := resolveSource(cmd, cfg)
	if err != nil {
		return nil, "", err
	}

	doc, err := changelog.LoadPath(path)
	if err != nil {
		return nil, "", wrapLoadError(err, path)
	}
	return doc, path, nil
}

// wrapLoadError converts load failures into categorized CLI errors.
func wrapLoadError(err error, path string) error {
	if stderrors.Is(err, os.ErrNotExist) {
		return errors.WrapWithMessage(err, errors.Prerequisite,
			fmt.Sprintf("%s does not exist", path),
			"Run 'changelog-md init' to create one",
			"Or pass an existing source path with --file")
	}

	var decErr *changelog.DecodeError
	if stderrors.As(err, &decErr) {
		remediation := make([]string, 0, len(decErr.Violations)+1)
		for _, v := range decErr.Violations {
			remediation = append(remediation, fmt.Sprintf("%s: %s", v.Field, v.Message))
		}
		remediation = append(remediation, "Fix the fields listed above and retry")
		return errors.WrapWithMessage(err, errors.Decode,
			fmt.Sprintf("%s is not a valid changelog document", path),
			remediation...)
	}

	return errors.Wrap(err, errors.Runtime)
}

// saveSource writes the document back to path, surfacing validation
// failures with their field paths.
func saveSource(path string, doc *changelog.Changelog, pretty bool) error {
	err := changelog.SavePath(path, doc, pretty)
	if err == nil {
		return nil
	}

	var valErr *changelog.ValidationError
	if stderrors.As(err, &valErr) {
		remediation := make([]string, 0, len(valErr.Violations))
		for _, v := range valErr.Violations {
			remediation = append(remediation, fmt.Sprintf("%s: %s", v.Field, v.Message))
		}
		return errors.WrapWithMessage(err, errors.Validation,
			"changelog document failed validation", remediation...)
	}
	return errors.Wrap(err, errors.Runtime)
}

// parseFormatFlag reads and validates the --format flag, falling back
// to the configured default when the flag is unset.
func parseFormatFlag(cmd *cobra.Command, cfg *config.Config) (changelog.Format, error) {
	name, _ := cmd.Flags().GetString("format")
	if name == "" {
		name = cfg.Format
	}

	format, err := changelog.ParseFormat(name)
	if err != nil {
		return 0, errors.NewArgumentError(
			fmt.Sprintf("unknown format %q", name),
			"Supported formats: yaml, toml, json")
	}
	return format, nil
}
