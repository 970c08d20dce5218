// Package precondition decides whether an operation is legal for a file's
// current version-control state.
//
// Decisions are made from a freshly queried State every time; nothing is
// carried between calls.
//
// Import rules:
//   - CAN import: internal/domain, internal/errors, internal/status, std lib
//   - MUST NOT import: internal/svn, internal/orchestrator, internal/cli
package precondition

import (
	"fmt"

	"github.com/mrz1836/svnop/internal/domain"
	svnerrors "github.com/mrz1836/svnop/internal/errors"
	"github.com/mrz1836/svnop/internal/status"
)

// Denial reasons shown to the user verbatim.
const (
	ReasonNotWorkingCopy     = "not a working copy"
	ReasonAlreadyWorkingCopy = "already a working copy"
	ReasonNotSaved           = "file has not been saved"
	ReasonAlreadyAdded       = "already added"
	ReasonRemoveFromIgnore   = "remove from ignore list first"
	ReasonNothingToCommit    = "nothing to commit"
	ReasonNotAddedYet        = "not added yet"
	ReasonIgnored            = "ignored"
	ReasonResolveConflicts   = "resolve conflicts first"
	ReasonFirstRevision      = "already at first revision"
	ReasonUnsupported        = "unsupported for this operation"
	ReasonNoLocalChanges     = "no local changes"
	ReasonUnknownOperation   = "unknown operation"
)

// State is the snapshot a decision is made from.
type State struct {
	// Code is the file's status; ignored when NoWorkingCopy is set.
	Code status.Code
	// NoWorkingCopy is the synthetic state for paths outside any working copy.
	NoWorkingCopy bool
	// Revision is the file's revision, used by revert.
	Revision int
	// Saved reports whether the file exists on disk with its content.
	Saved bool
}

// InWorkingCopy builds the state of a saved file inside a working copy.
func InWorkingCopy(code status.Code, revision int) State {
	return State{Code: code, Revision: revision, Saved: true}
}

// OutsideWorkingCopy builds the state of a saved file outside any working copy.
func OutsideWorkingCopy() State {
	return State{NoWorkingCopy: true, Saved: true}
}

// Decision is the outcome of Check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Err returns nil for allowed decisions and an ErrPrecondition otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	if d.Reason == ReasonNotWorkingCopy {
		return fmt.Errorf("%w: %w", svnerrors.ErrPrecondition, svnerrors.ErrNotWorkingCopy)
	}
	return fmt.Errorf("%w: %s", svnerrors.ErrPrecondition, d.Reason)
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Reason: reason} }

// rule describes which codes an operation accepts inside a working copy.
type rule struct {
	allowed       []status.Code
	reasons       map[status.Code]string
	defaultReason func(status.Code) string
	requiresSaved bool
}

func unsupported(status.Code) string { return ReasonUnsupported }

// rules is the operation-gated transition table.
//
//	Add     Untracked
//	Commit  Added, Modified
//	Revert  Modified, Unmodified (revision > 1)
//	Diff    Modified, Added, Replaced, Conflicted
//
// Create-and-import accepts only the NoWorkingCopy state and is handled
// before the table.
//
//nolint:gochecknoglobals // read-only lookup table
var rules = map[domain.Operation]rule{
	domain.OperationAdd: {
		allowed:       []status.Code{status.Untracked},
		reasons:       map[status.Code]string{status.Ignored: ReasonRemoveFromIgnore},
		defaultReason: func(status.Code) string { return ReasonAlreadyAdded },
		requiresSaved: true,
	},
	domain.OperationCommit: {
		allowed: []status.Code{status.Added, status.Modified},
		reasons: map[status.Code]string{
			status.Unmodified: ReasonNothingToCommit,
			status.Untracked:  ReasonNotAddedYet,
			status.Ignored:    ReasonIgnored,
			status.Conflicted: ReasonResolveConflicts,
		},
		defaultReason: func(c status.Code) string { return "cannot commit a file that is " + c.String() },
		requiresSaved: true,
	},
	domain.OperationRevert: {
		allowed:       []status.Code{status.Modified, status.Unmodified},
		defaultReason: unsupported,
	},
	domain.OperationDiff: {
		allowed:       []status.Code{status.Modified, status.Added, status.Replaced, status.Conflicted},
		reasons:       map[status.Code]string{status.Unmodified: ReasonNoLocalChanges},
		defaultReason: unsupported,
	},
}

// Check decides whether op may run against a file in state st.
func Check(op domain.Operation, st State) Decision {
	if op == domain.OperationCreateImport {
		switch {
		case !st.NoWorkingCopy:
			return deny(ReasonAlreadyWorkingCopy)
		case !st.Saved:
			return deny(ReasonNotSaved)
		default:
			return allow()
		}
	}

	r, ok := rules[op]
	if !ok {
		return deny(ReasonUnknownOperation)
	}
	if st.NoWorkingCopy {
		return deny(ReasonNotWorkingCopy)
	}
	if r.requiresSaved && !st.Saved {
		return deny(ReasonNotSaved)
	}

	for _, c := range r.allowed {
		if c != st.Code {
			continue
		}
		if op == domain.OperationRevert && c == status.Unmodified && st.Revision <= 1 {
			return deny(ReasonFirstRevision)
		}
		return allow()
	}

	if reason, ok := r.reasons[st.Code]; ok {
		return deny(reason)
	}
	return deny(r.defaultReason(st.Code))
}

// NeedsRevision reports whether Check uses State.Revision for op, so callers
// can skip the extra info query otherwise.
func NeedsRevision(op domain.Operation) bool {
	return op == domain.OperationRevert
}
