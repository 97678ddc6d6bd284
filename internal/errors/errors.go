// Package errors defines the categorized error type the relnote CLI
// reports to users. Every user-facing failure names a category, which the
// CLI maps to a process exit code, and carries remediation steps pointing
// at the exact command or file to fix.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory classifies what went wrong. Adding a category means
// extending the exit-code mapping in the CLI as well.
type ErrorCategory int

const (
	// Argument covers bad command input: unknown versions, invalid
	// change categories, conflicting flags.
	Argument ErrorCategory = iota
	// Configuration covers unusable config files and missing settings
	// such as an unset GitHub token variable.
	Configuration
	// Prerequisite covers missing files a command needs, typically the
	// CHANGELOG.yaml / CHANGELOG.md pair.
	Prerequisite
	// Runtime covers failures during execution, such as remote fetches
	// or file writes.
	Runtime
)

var categoryNames = map[ErrorCategory]string{
	Argument:      "Argument Error",
	Configuration: "Configuration Error",
	Prerequisite:  "Prerequisite Error",
	Runtime:       "Runtime Error",
}

func (c ErrorCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Error"
}

// CLIError is the error type every relnote command surfaces to the user.
type CLIError struct {
	// Category determines the exit code and the error heading.
	Category ErrorCategory
	// Message describes what went wrong.
	Message string
	// Remediation lists concrete steps to resolve the error.
	Remediation []string
	// Usage shows the correct invocation; set on argument errors only.
	Usage string

	// cause is the underlying error when this wraps one.
	cause error
}

func (e *CLIError) Error() string { return e.Message }

// Unwrap exposes the wrapped error so errors.Is and errors.As see
// through CLIError.
func (e *CLIError) Unwrap() error { return e.cause }

func newError(category ErrorCategory, message string, remediation []string) *CLIError {
	return &CLIError{
		Category:    category,
		Message:     message,
		Remediation: remediation,
	}
}

// NewArgumentError reports bad command input.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return newError(Argument, message, remediation)
}

// NewArgumentErrorWithUsage reports bad command input together with the
// correct invocation syntax.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	err := newError(Argument, message, remediation)
	err.Usage = usage
	return err
}

// NewConfigError reports unusable or missing configuration.
func NewConfigError(message string, remediation ...string) *CLIError {
	return newError(Configuration, message, remediation)
}

// NewPrerequisiteError reports a missing file or dependency.
func NewPrerequisiteError(message string, remediation ...string) *CLIError {
	return newError(Prerequisite, message, remediation)
}

// NewRuntimeError reports a failure during command execution.
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return newError(Runtime, message, remediation)
}

// Wrap converts err into a CLIError of the given category, keeping its
// message. Returns nil when err is nil.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	wrapped := newError(category, err.Error(), remediation)
	wrapped.cause = err
	return wrapped
}

// WrapWithMessage converts err into a CLIError, prefixing its message
// with context. Returns nil when err is nil.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	wrapped := newError(category, fmt.Sprintf("%s: %v", message, err), remediation)
	wrapped.cause = err
	return wrapped
}

// AsCLIError returns the CLIError in err's chain, or nil when there is
// none.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
