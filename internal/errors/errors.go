// Package errors provides centralized error handling for svnop.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for the operation error taxonomy.
// Every operation ends in exactly one of these categories or in success.
var (
	// ErrEnvironment indicates that the svn tool is missing, too old, or the
	// platform cannot serve the request (for example no ra_local module).
	// It is detected once at startup and is never retried.
	ErrEnvironment = errors.New("environment not usable")

	// ErrToolUnavailable indicates that an executable could not be located.
	ErrToolUnavailable = errors.New("tool not available")

	// ErrPrecondition indicates that the requested operation is not legal for
	// the file's current version-control state. No command was issued.
	ErrPrecondition = errors.New("precondition failed")

	// ErrExternalCommand indicates that svn reported an error that is not one
	// of the recognized recoverable codes.
	ErrExternalCommand = errors.New("svn command failed")

	// ErrRecoverableCommit indicates that a commit failed because an added
	// ancestor directory was missing from the commit and the single recovery
	// attempt failed as well.
	ErrRecoverableCommit = errors.New("commit recovery failed")

	// ErrAmbiguousResult indicates that svn produced no output on either
	// stream; only the exit code is known.
	ErrAmbiguousResult = errors.New("ambiguous command result")

	// ErrNotWorkingCopy indicates that the path is not inside a working copy.
	ErrNotWorkingCopy = errors.New("not a working copy")

	// ErrUnknownStatusCode indicates a status column character outside the
	// fixed table.
	ErrUnknownStatusCode = errors.New("unknown status code")

	// ErrLabelNotFound indicates that an expected label was missing from svn
	// info output.
	ErrLabelNotFound = errors.New("label not found in svn output")

	// ErrPathOutsideRoot indicates that a file is not below the given
	// working copy root.
	ErrPathOutsideRoot = errors.New("path is outside the working copy root")

	// ErrInvalidTemplateArgs indicates that a command template was invoked
	// with the wrong number of arguments.
	ErrInvalidTemplateArgs = errors.New("invalid command template arguments")

	// ErrUnknownTemplate indicates that a command template is not defined.
	ErrUnknownTemplate = errors.New("unknown command template")

	// ErrUnknownOperation indicates that an operation name is not recognized.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrCommandTimeout indicates a command exceeded its timeout duration.
	ErrCommandTimeout = errors.New("command timeout exceeded")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidSVN indicates an invalid svn configuration value.
	ErrConfigInvalidSVN = errors.New("invalid svn configuration")

	// ErrConfigInvalidRepository indicates an invalid repository configuration value.
	ErrConfigInvalidRepository = errors.New("invalid repository configuration")

	// ErrConfigInvalidMessages indicates an invalid messages configuration value.
	ErrConfigInvalidMessages = errors.New("invalid messages configuration")

	// ErrConfigInvalidJournal indicates an invalid journal configuration value.
	ErrConfigInvalidJournal = errors.New("invalid journal configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrValueOutOfRange indicates that a numeric value exceeded its bound.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrJournal indicates that the operation journal could not be read or written.
	ErrJournal = errors.New("journal operation failed")

	// ErrLockTimeout indicates another svnop process held the operation lock
	// for the directory longer than the lock timeout.
	ErrLockTimeout = errors.New("timeout waiting for operation lock")

	// ErrDiffParse indicates that svn diff output could not be parsed.
	ErrDiffParse = errors.New("diff output could not be parsed")

	// ErrOperationCanceled indicates the user canceled an operation.
	ErrOperationCanceled = errors.New("operation canceled by user")

	// ErrNonInteractiveMode indicates that an operation requiring confirmation
	// was attempted in non-interactive mode without the force flag.
	ErrNonInteractiveMode = errors.New("use --force in non-interactive mode")

	// ErrOperationFailed marks a CLI command whose operation report has
	// already been printed. It only drives the exit code.
	ErrOperationFailed = errors.New("operation failed")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
