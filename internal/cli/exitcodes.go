package cli

import (
	"errors"

	"github.com/yaklabco/gdocmark/pkg/runner"
)

// Exit codes for gdocmark.
const (
	// ExitSuccess indicates every input was converted.
	ExitSuccess = 0

	// ExitConversionFailed indicates at least one input could not be converted.
	ExitConversionFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrConversionFailed is returned when some inputs failed to convert. The
// failures have already been reported.
var ErrConversionFailed = errors.New("conversion failed")

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

// Error implements error.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps an error returned by the root command to an exit code.
// Errors without an explicit code are internal errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitInternalError
}

// ExitCodeFromResult determines the exit code of a finished run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitConversionFailed
	}
	return ExitSuccess
}
