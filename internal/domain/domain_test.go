package domain

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svnerrors "github.com/mrz1836/svnop/internal/errors"
)

func TestParseOperation(t *testing.T) {
	tests := []struct {
		input string
		want  Operation
	}{
		{"add", OperationAdd},
		{" Commit ", OperationCommit},
		{"create", OperationCreateImport},
		{"create_import", OperationCreateImport},
		{"revert", OperationRevert},
		{"diff", OperationDiff},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseOperation(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ParseOperation("merge")
	require.ErrorIs(t, err, svnerrors.ErrUnknownOperation)
}

func TestOperation_Mutating(t *testing.T) {
	for _, op := range Operations() {
		assert.Equal(t, op != OperationDiff, op.Mutating(), op.String())
	}
	assert.Equal(t, "create and import", OperationCreateImport.Label())
	assert.Equal(t, "unknown", Operation("x").Label())
}

func TestReport_JSONOmitsErr(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := Report{
		ID:         "op-1",
		Operation:  OperationCommit,
		Path:       "/wc/a.txt",
		Message:    Message{Severity: SeverityError, Text: "nothing to commit"},
		Err:        errors.New("boom"),
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Second),
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"severity":"ERROR"`)
	assert.NotContains(t, string(data), "boom")
	assert.False(t, r.OK())
	assert.Equal(t, 2*time.Second, r.Duration())
}

func TestRepositoryLocation(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix paths")
	}
	loc := RepositoryLocation{RootDirectory: "/home/u/.svnrepos", Name: "notes"}
	assert.Equal(t, filepath.Join("/home/u/.svnrepos", "notes"), loc.Path())
	assert.Equal(t, "file:///home/u/.svnrepos/notes", loc.URL())
}

func TestFileURL_DriveLetter(t *testing.T) {
	assert.Equal(t, "file:///C:/repos/x", FileURL("C:/repos/x"))
}
