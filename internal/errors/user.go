package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// actioner is implemented by errors that know a more specific fix than the
// sentinel they wrap.
type actioner interface {
	Action() string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries is the pre-built mapping of sentinel errors to their user-facing messages.
// This single source of truth ensures UserMessage and Actionable stay in sync.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Environment
	// ===================
	{
		err: ErrEnvironment,
		info: ErrorInfo{
			Message: "Subversion is not usable in this environment.",
			Action:  "Run 'svnop doctor' to see which tools or modules are missing.",
		},
	},
	{
		err: ErrToolUnavailable,
		info: ErrorInfo{
			Message: "A required Subversion executable was not found.",
			Action:  "Install Subversion or set svn.program in .svnop/config.yaml.",
		},
	},
	{
		err: ErrCommandTimeout,
		info: ErrorInfo{
			Message: "The svn command timed out.",
			Action:  "Increase svn.timeout or check whether svn is waiting for credentials.",
		},
	},

	// ===================
	// Operations
	// ===================
	// More specific entries come first; lookups stop at the first match.
	{
		err: ErrNotWorkingCopy,
		info: ErrorInfo{
			Message: "The path is not inside a Subversion working copy.",
			Action:  "Run 'svnop create <file>' to create a repository for it.",
		},
	},
	{
		err: ErrPrecondition,
		info: ErrorInfo{
			Message: "The operation is not allowed for the file's current state.",
			Action:  "Run 'svnop status <file>' to see the file's state.",
		},
	},
	{
		err: ErrRecoverableCommit,
		info: ErrorInfo{
			Message: "Commit failed even after including the added parent directories.",
			Action:  "Check 'svn status' in the working copy root and commit manually.",
		},
	},
	{
		err: ErrExternalCommand,
		info: ErrorInfo{
			Message: "Subversion reported an error.",
			Action:  "Review the svn message above and fix the working copy.",
		},
	},
	{
		err: ErrAmbiguousResult,
		info: ErrorInfo{
			Message: "Subversion produced no output; the result is unknown.",
			Action:  "Run 'svnop status <file>' to confirm the outcome.",
		},
	},
	{
		err: ErrUnknownStatusCode,
		info: ErrorInfo{
			Message: "Subversion returned a status code svnop does not recognize.",
			Action:  "Check 'svn status' output manually.",
		},
	},
	{
		err: ErrLabelNotFound,
		info: ErrorInfo{
			Message: "Could not read the expected field from 'svn info'.",
			Action:  "Ensure svn runs with an English locale (LC_ALL=C).",
		},
	},
	{
		err: ErrPathOutsideRoot,
		info: ErrorInfo{
			Message: "The file is not below the working copy root.",
			Action:  "",
		},
	},
	{
		err: ErrDiffParse,
		info: ErrorInfo{
			Message: "The diff output could not be summarized.",
			Action:  "Run 'svn diff' directly to see the raw output.",
		},
	},
	{
		err: ErrJournal,
		info: ErrorInfo{
			Message: "The operation journal could not be accessed.",
			Action:  "Check journal.path or disable the journal with journal.enabled=false.",
		},
	},
	{
		err: ErrLockTimeout,
		info: ErrorInfo{
			Message: "Another svnop process is working in this directory.",
			Action:  "Wait for it to finish, then retry.",
		},
	},

	// ===================
	// Configuration
	// ===================
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "Configuration is not loaded.",
			Action:  "Ensure .svnop/config.yaml is valid YAML.",
		},
	},
	{
		err: ErrConfigInvalidSVN,
		info: ErrorInfo{
			Message: "Invalid svn configuration.",
			Action:  "Check the 'svn' section in .svnop/config.yaml for invalid values.",
		},
	},
	{
		err: ErrConfigInvalidRepository,
		info: ErrorInfo{
			Message: "Invalid repository configuration.",
			Action:  "Check the 'repository' section in .svnop/config.yaml for invalid values.",
		},
	},
	{
		err: ErrConfigInvalidMessages,
		info: ErrorInfo{
			Message: "Invalid messages configuration.",
			Action:  "Check the 'messages' section in .svnop/config.yaml for invalid values.",
		},
	},
	{
		err: ErrConfigInvalidJournal,
		info: ErrorInfo{
			Message: "Invalid journal configuration.",
			Action:  "Check the 'journal' section in .svnop/config.yaml for invalid values.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Invalid output format.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrEmptyValue,
		info: ErrorInfo{
			Message: "A required value was not provided.",
			Action:  "Provide the required value and try again.",
		},
	},
	{
		err: ErrUnknownOperation,
		info: ErrorInfo{
			Message: "Unknown operation.",
			Action:  "Run 'svnop --help' to list supported operations.",
		},
	},

	// ===================
	// User Interaction
	// ===================
	{
		err: ErrOperationCanceled,
		info: ErrorInfo{
			Message: "Operation was canceled.",
			Action:  "",
		},
	},
	{
		err: ErrNonInteractiveMode,
		info: ErrorInfo{
			Message: "This operation requires confirmation in non-interactive mode.",
			Action:  "Use --force flag to skip confirmation.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
// Built once from errorInfoEntries during package initialization.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

// buildErrorInfoMap creates a map from the errorInfoEntries slice.
// This is called once during package init for O(1) direct lookups.
func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// It first tries O(1) direct map lookup for unwrapped sentinel errors,
// then falls back to errors.Is() traversal for wrapped errors.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	// Fast path: O(1) lookup for direct sentinel errors
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	// Slow path: errors.Is() for wrapped errors
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// This function maps sentinel errors to helpful, actionable messages
// that are suitable for display to end users.
//
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
//
// For errors that are not recoverable or have no clear action, the action
// string will be empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	var a actioner
	if errors.As(err, &a) {
		if specific := a.Action(); specific != "" {
			info.Action = specific
		}
	}
	return info.Message, info.Action
}
