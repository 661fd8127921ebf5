package cli

import (
	"errors"
	"fmt"
)

// Exit codes for kumihan.
const (
	// ExitSuccess indicates every document parsed successfully.
	ExitSuccess = 0

	// ExitParseFailure indicates at least one document failed to parse.
	ExitParseFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrParseFailed is returned when one or more documents failed to parse.
var ErrParseFailed = errors.New("parse failed")

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: ExitInvalidUsage, Err: fmt.Errorf(format, args...)}
}

func configError(err error) error {
	return &ExitError{Code: ExitConfigError, Err: err}
}

func ioError(err error) error {
	return &ExitError{Code: ExitIOError, Err: err}
}

// ExitCode maps an error returned by the root command to an exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, ErrParseFailed) {
		return ExitParseFailure
	}

	// Flag and argument errors from cobra.
	return ExitInvalidUsage
}
