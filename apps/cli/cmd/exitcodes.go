package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/dotenv/packages/core/env"
)

// Exit codes for dotenv CLI
const (
	// ExitSuccess indicates the command completed
	ExitSuccess = 0

	// ExitFailure indicates a missing key or a failed operation
	ExitFailure = 1

	// ExitFileNotFound indicates the .env file does not exist
	ExitFileNotFound = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// exitError carries an exit code through cobra. A silent exitError has
// already reported itself.
type exitError struct {
	code   int
	err    error
	silent bool
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func usageError(err error) error {
	return &exitError{code: ExitUsageError, err: err}
}

func exitCode(err error) int {
	var ee *exitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &ee):
		return ee.code
	case errors.Is(err, env.ErrFileNotFound):
		return ExitFileNotFound
	case errors.Is(err, env.ErrInvalidKey), isCobraUsageError(err):
		return ExitUsageError
	default:
		return ExitFailure
	}
}

// cobra reports these without going through the flag error func.
var cobraUsagePrefixes = []string{
	"unknown command",
	"required flag(s)",
	"if any flags in the group",
}

func isCobraUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range cobraUsagePrefixes {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
