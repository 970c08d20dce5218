// Package domain provides shared domain types for svnop.
// These types are used across all internal packages to ensure consistent data structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
//
// All JSON field names use snake_case.
package domain

import (
	"fmt"
	"strings"

	svnerrors "github.com/mrz1836/svnop/internal/errors"
)

// Operation identifies one user-triggered version-control action.
type Operation string

// Supported operations.
const (
	// OperationCreateImport creates a local repository, checks out its trunk
	// over the file's directory and imports the file.
	OperationCreateImport Operation = "create_import"

	// OperationAdd schedules an untracked file for addition.
	OperationAdd Operation = "add"

	// OperationCommit commits a single added or modified file.
	OperationCommit Operation = "commit"

	// OperationRevert discards local edits or steps back one committed revision.
	OperationRevert Operation = "revert"

	// OperationDiff summarizes local changes against the base revision.
	OperationDiff Operation = "diff"
)

// Operations lists every supported operation in display order.
func Operations() []Operation {
	return []Operation{
		OperationCreateImport,
		OperationAdd,
		OperationCommit,
		OperationRevert,
		OperationDiff,
	}
}

// String returns the string representation of the operation.
func (o Operation) String() string {
	return string(o)
}

// Label returns a short human-readable verb for the operation.
func (o Operation) Label() string {
	switch o {
	case OperationCreateImport:
		return "create and import"
	case OperationAdd, OperationCommit, OperationRevert, OperationDiff:
		return string(o)
	default:
		return "unknown"
	}
}

// Mutating reports whether the operation changes the working copy or repository.
func (o Operation) Mutating() bool {
	return o != OperationDiff
}

// ParseOperation converts a name into an Operation.
func ParseOperation(s string) (Operation, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "create" {
		return OperationCreateImport, nil
	}
	for _, op := range Operations() {
		if string(op) == name {
			return op, nil
		}
	}
	return "", fmt.Errorf("%w: %q", svnerrors.ErrUnknownOperation, s)
}

// Severity tags a user-facing message.
type Severity string

const (
	// SeverityInfo marks a success message.
	SeverityInfo Severity = "INFO"

	// SeverityError marks a failure message.
	SeverityError Severity = "ERROR"
)
