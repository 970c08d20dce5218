package precondition

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/svnop/internal/domain"
	svnerrors "github.com/mrz1836/svnop/internal/errors"
	"github.com/mrz1836/svnop/internal/status"
)

func TestCheck_Add(t *testing.T) {
	for _, code := range status.Codes() {
		t.Run(code.String(), func(t *testing.T) {
			d := Check(domain.OperationAdd, InWorkingCopy(code, 3))
			switch code {
			case status.Untracked:
				assert.True(t, d.Allowed)
				assert.Empty(t, d.Reason)
			case status.Ignored:
				assert.False(t, d.Allowed)
				assert.Equal(t, ReasonRemoveFromIgnore, d.Reason)
			default:
				assert.False(t, d.Allowed)
				assert.Equal(t, ReasonAlreadyAdded, d.Reason)
			}
		})
	}
}

func TestCheck_Commit(t *testing.T) {
	reasons := map[status.Code]string{
		status.Unmodified: ReasonNothingToCommit,
		status.Untracked:  ReasonNotAddedYet,
		status.Ignored:    ReasonIgnored,
		status.Conflicted: ReasonResolveConflicts,
	}

	for _, code := range status.Codes() {
		t.Run(code.String(), func(t *testing.T) {
			d := Check(domain.OperationCommit, InWorkingCopy(code, 3))
			if code == status.Added || code == status.Modified {
				assert.True(t, d.Allowed)
				return
			}
			assert.False(t, d.Allowed)
			if want, ok := reasons[code]; ok {
				assert.Equal(t, want, d.Reason)
			} else {
				assert.Equal(t, fmt.Sprintf("cannot commit a file that is %s", code), d.Reason)
			}
		})
	}
}

func TestCheck_Revert(t *testing.T) {
	tests := []struct {
		name     string
		code     status.Code
		revision int
		allowed  bool
		reason   string
	}{
		{"modified discards edit", status.Modified, 1, true, ""},
		{"unmodified at revision 5", status.Unmodified, 5, true, ""},
		{"unmodified at revision 2", status.Unmodified, 2, true, ""},
		{"unmodified at revision 1", status.Unmodified, 1, false, ReasonFirstRevision},
		{"unmodified at revision 0", status.Unmodified, 0, false, ReasonFirstRevision},
		{"untracked", status.Untracked, 0, false, ReasonUnsupported},
		{"ignored", status.Ignored, 0, false, ReasonUnsupported},
		{"added", status.Added, 0, false, ReasonUnsupported},
		{"conflicted", status.Conflicted, 4, false, ReasonUnsupported},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := Check(domain.OperationRevert, InWorkingCopy(tc.code, tc.revision))
			assert.Equal(t, tc.allowed, d.Allowed)
			assert.Equal(t, tc.reason, d.Reason)
		})
	}
}

func TestCheck_Diff(t *testing.T) {
	allowed := map[status.Code]bool{
		status.Modified: true, status.Added: true, status.Replaced: true, status.Conflicted: true,
	}
	for _, code := range status.Codes() {
		d := Check(domain.OperationDiff, InWorkingCopy(code, 2))
		assert.Equal(t, allowed[code], d.Allowed, code.String())
	}
	assert.Equal(t, ReasonNoLocalChanges, Check(domain.OperationDiff, InWorkingCopy(status.Unmodified, 2)).Reason)
	assert.Equal(t, ReasonUnsupported, Check(domain.OperationDiff, InWorkingCopy(status.Untracked, 0)).Reason)
}

func TestCheck_CreateImport(t *testing.T) {
	d := Check(domain.OperationCreateImport, OutsideWorkingCopy())
	assert.True(t, d.Allowed)

	for _, code := range status.Codes() {
		d := Check(domain.OperationCreateImport, InWorkingCopy(code, 1))
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonAlreadyWorkingCopy, d.Reason)
	}

	unsaved := OutsideWorkingCopy()
	unsaved.Saved = false
	assert.Equal(t, ReasonNotSaved, Check(domain.OperationCreateImport, unsaved).Reason)
}

func TestCheck_NoWorkingCopy(t *testing.T) {
	for _, op := range []domain.Operation{
		domain.OperationAdd, domain.OperationCommit, domain.OperationRevert, domain.OperationDiff,
	} {
		d := Check(op, OutsideWorkingCopy())
		assert.False(t, d.Allowed, op.String())
		assert.Equal(t, ReasonNotWorkingCopy, d.Reason, op.String())
		require.ErrorIs(t, d.Err(), svnerrors.ErrNotWorkingCopy)
		require.ErrorIs(t, d.Err(), svnerrors.ErrPrecondition)
	}
}

func TestCheck_RequiresSaved(t *testing.T) {
	unsaved := func(code status.Code) State {
		return State{Code: code, Revision: 2}
	}

	assert.Equal(t, ReasonNotSaved, Check(domain.OperationAdd, unsaved(status.Untracked)).Reason)
	assert.Equal(t, ReasonNotSaved, Check(domain.OperationCommit, unsaved(status.Modified)).Reason)
	// Revert and diff operate on what svn already knows.
	assert.True(t, Check(domain.OperationRevert, unsaved(status.Modified)).Allowed)
	assert.True(t, Check(domain.OperationDiff, unsaved(status.Modified)).Allowed)
}

func TestCheck_UnknownOperation(t *testing.T) {
	d := Check(domain.Operation("merge"), InWorkingCopy(status.Modified, 2))
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonUnknownOperation, d.Reason)
}

func TestDecision_Err(t *testing.T) {
	require.NoError(t, Decision{Allowed: true}.Err())

	err := deny(ReasonNothingToCommit).Err()
	require.ErrorIs(t, err, svnerrors.ErrPrecondition)
	require.NotErrorIs(t, err, svnerrors.ErrNotWorkingCopy)
	assert.Equal(t, "precondition failed: nothing to commit", err.Error())
}

func TestNeedsRevision(t *testing.T) {
	assert.True(t, NeedsRevision(domain.OperationRevert))
	assert.False(t, NeedsRevision(domain.OperationCommit))
}
