package svn

import (
	"fmt"

	svnerrors "github.com/mrz1836/svnop/internal/errors"
)

// CommandError describes an svn invocation that ended in an error or an
// ambiguous outcome. It unwraps to ErrExternalCommand or ErrAmbiguousResult.
type CommandError struct {
	// Template is the invocation that failed.
	Template Template
	// Code is the first recognized diagnostic code, if any.
	Code Code
	// Text is the tool's own error text, trimmed.
	Text string
	// ExitCode is the process exit status.
	ExitCode int
	// Ambiguous is true when neither stream carried any text.
	Ambiguous bool
}

// Error returns the tool's text verbatim, or the exit code when there is none.
func (e *CommandError) Error() string {
	if e.Ambiguous || e.Text == "" {
		return fmt.Sprintf("svn %s produced no output (exit code %d)", e.Template, e.ExitCode)
	}
	return e.Text
}

// Unwrap returns the error category.
func (e *CommandError) Unwrap() error {
	if e.Ambiguous {
		return svnerrors.ErrAmbiguousResult
	}
	return svnerrors.ErrExternalCommand
}

// Type returns a coarse classification of the error text.
func (e *CommandError) Type() ErrorType {
	return ClassifyText(e.Text)
}

// Action returns the fix suggested for this kind of svn failure. It takes
// precedence over the generic advice for ErrExternalCommand.
func (e *CommandError) Action() string {
	if e.Ambiguous {
		return ""
	}
	return e.Type().Action()
}

// HasCode reports whether the error carries the given diagnostic code.
func (e *CommandError) HasCode(code Code) bool {
	return e.Code.Matches(code) || HasCode(e.Text, code)
}
