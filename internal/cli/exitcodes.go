package cli

import (
	"errors"

	"github.com/yaklabco/novelint/internal/configloader"
	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/runner"
)

// Exit codes for novelint.
const (
	// ExitSuccess indicates a clean run.
	ExitSuccess = 0

	// ExitIssues indicates diagnostics at warning or error severity remain.
	ExitIssues = 1

	// ExitUsage indicates invalid command-line usage or configuration.
	ExitUsage = 2

	// ExitRuntime indicates a runtime failure, such as an unreadable file.
	ExitRuntime = 3
)

var (
	// ErrLintIssuesFound is returned when lint issues are found.
	ErrLintIssuesFound = errors.New("lint issues found")

	// ErrFilesFailed is returned when some files could not be processed.
	ErrFilesFailed = errors.New("some files could not be processed")
)

// UsageError marks errors caused by bad flags, arguments or configuration.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

func usageErrorf(err error) error {
	if err == nil {
		return nil
	}
	return &UsageError{Err: err}
}

// ExitCodeFromResult determines the exit code of a finished run. Info
// diagnostics never fail a run; failed files take precedence over issues.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasErrors() {
		return ExitRuntime
	}

	bySeverity := result.Stats.DiagnosticsBySeverity
	if bySeverity[config.SeverityError] > 0 || bySeverity[config.SeverityWarning] > 0 {
		return ExitIssues
	}

	return ExitSuccess
}

// errorForExitCode returns the sentinel that makes ExitCode report code.
func errorForExitCode(code int) error {
	switch code {
	case ExitIssues:
		return ErrLintIssuesFound
	case ExitRuntime:
		return ErrFilesFailed
	default:
		return nil
	}
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	var usageErr *UsageError
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrLintIssuesFound):
		return ExitIssues
	case errors.As(err, &usageErr), errors.As(err, &validationErr):
		return ExitUsage
	default:
		return ExitRuntime
	}
}
