package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mrz1836/svnop/internal/status"
)

// fileStatus is the read-only view printed by `svnop status`.
type fileStatus struct {
	Path        string `json:"path"`
	WorkingCopy bool   `json:"working_copy"`
	Status      string `json:"status,omitempty"`
	Revision    int    `json:"revision"`
	Root        string `json:"root,omitempty"`
}

func (s fileStatus) String() string {
	base := filepath.Base(s.Path)
	switch {
	case !s.WorkingCopy:
		return fmt.Sprintf("%s is not inside a working copy.", base)
	case s.Revision == 0:
		return fmt.Sprintf("%s: %s, never committed (working copy %s).", base, s.Status, s.Root)
	default:
		return fmt.Sprintf("%s: %s at revision %d (working copy %s).", base, s.Status, s.Revision, s.Root)
	}
}

func addStatusCommand(root *cobra.Command, a *app) {
	root.AddCommand(&cobra.Command{
		Use:   "status <file>",
		Short: "Show a file's status, revision and working-copy root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStatus(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	})
}

func (a *app) runStatus(ctx context.Context, w io.Writer, path string) error {
	out := a.output(w)

	abs, err := filepath.Abs(path)
	if err != nil {
		return fail(out, err)
	}

	s, err := a.openSession(ctx, sessionOptions{probe: true})
	defer s.Close()
	if err != nil {
		return fail(out, err)
	}

	reader := status.NewReader(s.exec, s.logger.With().Str("component", "status").Logger())
	st, err := readFileStatus(ctx, reader, abs)
	if err != nil {
		return fail(out, err)
	}

	if a.flags.Output == OutputJSON {
		return out.JSON(st)
	}
	out.Info(st.String())
	return nil
}

// readFileStatus queries root first so a path outside any working copy is
// reported as such rather than as an error.
func readFileStatus(ctx context.Context, reader *status.Reader, path string) (fileStatus, error) {
	st := fileStatus{Path: path}

	root, err := reader.WorkingCopyRoot(ctx, path)
	if status.IsNotWorkingCopy(err) {
		return st, nil
	}
	if err != nil {
		return st, err
	}

	code, err := reader.FileStatus(ctx, path)
	if err != nil {
		return st, err
	}
	rev, err := reader.Revision(ctx, path)
	if err != nil {
		return st, err
	}

	st.WorkingCopy = true
	st.Status = code.String()
	st.Revision = rev
	st.Root = root
	return st, nil
}
