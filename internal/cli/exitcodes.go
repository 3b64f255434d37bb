package cli

import "github.com/yaklabco/lydoc/pkg/runner"

// Exit codes for lydoc.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFileErrors indicates that some files could not be processed.
	ExitFileErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code for a batch run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitFileErrors
	}
	return ExitSuccess
}
