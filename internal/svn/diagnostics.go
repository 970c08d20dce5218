package svn

import (
	"regexp"
	"strings"

	"github.com/mrz1836/svnop/internal/constants"
)

// Code is a diagnostic code embedded in svn error or warning text,
// such as E155007 or W155010.
type Code string

// Recognized diagnostic codes.
const (
	// CodeNotWorkingCopy means the path is not inside a working copy.
	CodeNotWorkingCopy Code = constants.CodeNotWorkingCopy
	// CodeParentNotAdded means a commit is missing an added ancestor directory.
	CodeParentNotAdded Code = constants.CodeParentNotAdded
	// CodeNodeNotFound means the path is not versioned yet.
	CodeNodeNotFound Code = constants.CodeNodeNotFound
)

var codePattern = regexp.MustCompile(`\b[EW]\d{6}\b`)

// Codes extracts every diagnostic code from text, in order of appearance.
func Codes(text string) []Code {
	matches := codePattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	codes := make([]Code, len(matches))
	for i, m := range matches {
		codes[i] = Code(m)
	}
	return codes
}

// Number returns the code without its E/W prefix.
func (c Code) Number() string {
	if c == "" {
		return ""
	}
	return string(c[1:])
}

// Matches reports whether c and other share a number. svn reports some
// conditions as an error from one subcommand and a warning from another
// (E155007 from info, W155007 from status).
func (c Code) Matches(other Code) bool {
	return c != "" && c.Number() == other.Number()
}

// HasCode reports whether text contains the given diagnostic code, either
// as an error or as a warning.
func HasCode(text string, code Code) bool {
	for _, c := range Codes(text) {
		if c.Matches(code) {
			return true
		}
	}
	return false
}

// ErrorType is a coarse classification of svn error text. It picks the
// suggested action shown under a failed operation.
type ErrorType int

const (
	// ErrorTypeUnknown indicates the error could not be classified.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeAuth indicates an authentication failure.
	ErrorTypeAuth
	// ErrorTypeLocked indicates the working copy is locked by another process.
	ErrorTypeLocked
	// ErrorTypeNetwork indicates a repository access failure.
	ErrorTypeNetwork
	// ErrorTypeOutOfDate indicates the item must be updated before commit.
	ErrorTypeOutOfDate
)

// String returns a human-readable name for the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeUnknown:
		return "unknown"
	case ErrorTypeAuth:
		return "authentication"
	case ErrorTypeLocked:
		return "locked"
	case ErrorTypeNetwork:
		return "network"
	case ErrorTypeOutOfDate:
		return "out_of_date"
	default:
		return "unknown"
	}
}

// Action returns the suggested fix for the error type, or "" when the
// generic svn advice applies.
func (e ErrorType) Action() string {
	switch e {
	case ErrorTypeAuth:
		return "Check your svn credentials, then retry."
	case ErrorTypeLocked:
		return "Run 'svn cleanup' in the working copy, then retry."
	case ErrorTypeNetwork:
		return "Check the repository URL and that the server is reachable."
	case ErrorTypeOutOfDate:
		return "Run 'svn update' first, then retry."
	case ErrorTypeUnknown:
		return ""
	default:
		return ""
	}
}

// PatternMatcher checks if a string contains any of a list of patterns.
// It performs case-insensitive matching on the lowercased input.
type PatternMatcher struct {
	patterns []string
}

// NewPatternMatcher creates a new PatternMatcher with the given lowercase patterns.
func NewPatternMatcher(patterns ...string) *PatternMatcher {
	return &PatternMatcher{patterns: patterns}
}

// MatchesLower checks if an already-lowercased string matches any pattern.
func (m *PatternMatcher) MatchesLower(lower string) bool {
	for _, pattern := range m.patterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

//nolint:gochecknoglobals // shared matchers
var (
	authMatcher      = NewPatternMatcher("e170001", "e215004", "authentication failed", "authorization failed")
	lockedMatcher    = NewPatternMatcher("e155004", "e155037", "is already locked", "run 'svn cleanup'")
	networkMatcher   = NewPatternMatcher("e170013", "e175002", "unable to connect", "connection refused")
	outOfDateMatcher = NewPatternMatcher("e155011", "e160028", "out of date", "out-of-date")
)

// ClassifyText returns the coarse error type for svn error text.
func ClassifyText(text string) ErrorType {
	lower := strings.ToLower(text)
	switch {
	case authMatcher.MatchesLower(lower):
		return ErrorTypeAuth
	case lockedMatcher.MatchesLower(lower):
		return ErrorTypeLocked
	case networkMatcher.MatchesLower(lower):
		return ErrorTypeNetwork
	case outOfDateMatcher.MatchesLower(lower):
		return ErrorTypeOutOfDate
	default:
		return ErrorTypeUnknown
	}
}
