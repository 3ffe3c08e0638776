package cli

import (
	"errors"

	"github.com/yaklabco/semoutline/internal/configloader"
	"github.com/yaklabco/semoutline/pkg/fsutil"
	"github.com/yaklabco/semoutline/pkg/outliner"
	"github.com/yaklabco/semoutline/pkg/runner"
	"github.com/yaklabco/semoutline/pkg/textenc"
)

// Exit codes for semoutline.
const (
	// ExitSuccess indicates successful execution with no parsing errors.
	ExitSuccess = 0

	// ExitParsingErrors indicates outlines were produced but recorded parsing errors.
	ExitParsingErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrParsingErrorsFound signals that at least one outline recorded parsing errors.
	ErrParsingErrorsFound = errors.New("parsing errors found")

	// ErrUsage marks invalid command-line usage.
	ErrUsage = errors.New("invalid usage")

	// ErrFilesFailed signals that at least one batch file could not be outlined.
	ErrFilesFailed = errors.New("some files failed")
)

// ExitCode maps an error returned by a command onto a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrParsingErrorsFound):
		return ExitParsingErrors
	case errors.Is(err, ErrUsage), errors.Is(err, textenc.ErrUnknownEncoding), errors.Is(err, runner.ErrInvalidGlob):
		return ExitInvalidUsage
	case errors.Is(err, configloader.ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrFilesFailed),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrTooLarge),
		errors.Is(err, outliner.ErrWriteFailure):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// ExitCodeFromResult determines the exit code of a batch run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() {
		return ExitIOError
	}

	if result.HasParsingErrors() {
		return ExitParsingErrors
	}

	return ExitSuccess
}

// errorFromResult converts a batch result into the error that carries its exit code.
func errorFromResult(result *runner.Result) error {
	switch ExitCodeFromResult(result) {
	case ExitIOError:
		return ErrFilesFailed
	case ExitParsingErrors:
		return ErrParsingErrorsFound
	default:
		return nil
	}
}
