// Package status turns svn status and info output into typed state.
//
// All text extraction lives here. The parsers are pure functions over the
// literal output of the svn command line client, and Reader pairs them with
// an svn.Executor.
package status

import (
	"fmt"

	svnerrors "github.com/mrz1836/svnop/internal/errors"
)

// Code is the first status column of a path: exactly one applies to a file
// at a given instant.
type Code int

// Status codes. The zero value is not a valid status.
const (
	Unmodified Code = iota + 1
	Added
	Conflicted
	Deleted
	Ignored
	Modified
	Replaced
	ExternalUnversioned
	Untracked
	Missing
	Obstructed
)

type codeInfo struct {
	char byte
	name string
}

//nolint:gochecknoglobals // fixed column table
var codeTable = map[Code]codeInfo{
	Unmodified:          {' ', "unmodified"},
	Added:               {'A', "added"},
	Conflicted:          {'C', "conflicted"},
	Deleted:             {'D', "deleted"},
	Ignored:             {'I', "ignored"},
	Modified:            {'M', "modified"},
	Replaced:            {'R', "replaced"},
	ExternalUnversioned: {'X', "external"},
	Untracked:           {'?', "untracked"},
	Missing:             {'!', "missing"},
	Obstructed:          {'~', "obstructed"},
}

//nolint:gochecknoglobals // inverse of codeTable
var charTable = func() map[byte]Code {
	m := make(map[byte]Code, len(codeTable))
	for c, info := range codeTable {
		m[info.char] = c
	}
	return m
}()

// Codes returns every status code in declaration order.
func Codes() []Code {
	return []Code{
		Unmodified, Added, Conflicted, Deleted, Ignored, Modified,
		Replaced, ExternalUnversioned, Untracked, Missing, Obstructed,
	}
}

// ParseCode maps a first-column character to its code. Characters outside
// the table are an error, never a default.
func ParseCode(ch byte) (Code, error) {
	if c, ok := charTable[ch]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: %q", svnerrors.ErrUnknownStatusCode, ch)
}

// Char returns the column character for the code, or 0 for invalid codes.
func (c Code) Char() byte {
	return codeTable[c].char
}

// String returns the lowercase status name.
func (c Code) String() string {
	if info, ok := codeTable[c]; ok {
		return info.name
	}
	return "invalid"
}

// Valid reports whether c is one of the defined codes.
func (c Code) Valid() bool {
	_, ok := codeTable[c]
	return ok
}

// MarshalText encodes the code as its name.
func (c Code) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", svnerrors.ErrUnknownStatusCode, int(c))
	}
	return []byte(c.String()), nil
}
