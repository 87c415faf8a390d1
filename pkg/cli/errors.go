package cli

import (
	"errors"
	"fmt"

	"github.com/NeuralTrust/perspective/pkg/infra/perspective"
)

// Exit codes, stable for scripts.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
	ExitRequest = 3
	ExitParsing = 4
)

// CLIError carries the process exit code for err.
type CLIError struct {
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	return e.Err.Error()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

func newUsageError(format string, args ...any) *CLIError {
	return &CLIError{Err: fmt.Errorf(format, args...), ExitCode: ExitUsage}
}

// fromAnalyzeError maps the analyzer error kinds onto exit codes.
func fromAnalyzeError(err error) *CLIError {
	switch {
	case errors.Is(err, perspective.ErrEmptyInput), errors.Is(err, perspective.ErrEmptyTypes):
		return &CLIError{Err: err, ExitCode: ExitUsage}
	case errors.Is(err, perspective.ErrParsingFailed):
		return &CLIError{Err: err, ExitCode: ExitParsing}
	case errors.Is(err, perspective.ErrRequestFailed):
		return &CLIError{Err: err, ExitCode: ExitRequest}
	default:
		return &CLIError{Err: err, ExitCode: ExitFailure}
	}
}

// ExitCode returns the code main should exit with for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.ExitCode
	}
	return ExitFailure
}
