package cli

import "github.com/ariel-frischer/changelog-md/internal/errors"

// Exit codes for the changelog-md CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitRuntime indicates an unexpected failure during execution
	ExitRuntime = 1

	// ExitDecodeFailed indicates the source file could not be decoded
	ExitDecodeFailed = 2

	// ExitValidationFailed indicates the document violates an invariant
	ExitValidationFailed = 3

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 4

	// ExitMissingPrerequisite indicates a missing source or an existing destination
	ExitMissingPrerequisite = 5
)

// ExitCodeFor maps an error to the process exit status.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	cliErr := errors.AsCLIError(err)
	if cliErr == nil {
		return ExitRuntime
	}
	switch cliErr.Category {
	case errors.Decode:
		return ExitDecodeFailed
	case errors.Validation:
		return ExitValidationFailed
	case errors.Argument:
		return ExitInvalidArguments
	case errors.Prerequisite:
		return ExitMissingPrerequisite
	default:
		return ExitRuntime
	}
}
