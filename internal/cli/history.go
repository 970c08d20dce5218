package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/svnop/internal/constants"
	"github.com/mrz1836/svnop/internal/errors"
	"github.com/mrz1836/svnop/internal/journal"
)

func addHistoryCommand(root *cobra.Command, a *app) {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent operation outcomes from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runHistory(cmd.Context(), cmd.OutOrStdout(), limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", constants.DefaultHistoryLimit, fmt.Sprintf("number of entries to show (at most %d)", constants.MaxHistoryLimit))
	root.AddCommand(cmd)
}

func (a *app) runHistory(ctx context.Context, w io.Writer, limit int) error {
	out := a.output(w)
	if limit <= 0 {
		return errors.NewExitCode2Error(fmt.Errorf("%w: --limit must be positive", errors.ErrEmptyValue))
	}
	if limit > constants.MaxHistoryLimit {
		return errors.NewExitCode2Error(fmt.Errorf("%w: --limit must be at most %d", errors.ErrValueOutOfRange, constants.MaxHistoryLimit))
	}

	s, err := a.openSession(ctx, sessionOptions{})
	defer s.Close()
	if err != nil {
		return fail(out, err)
	}

	if !s.cfg.Journal.Enabled {
		out.Info("The journal is disabled (journal.enabled is false).")
		return nil
	}
	if err := s.attachJournal(ctx, a.openJournal); err != nil {
		return fail(out, err)
	}

	entries, err := s.store.Recent(ctx, limit)
	if err != nil {
		return fail(out, err)
	}

	if a.flags.Output == OutputJSON {
		if entries == nil {
			entries = []journal.Entry{}
		}
		return out.JSON(entries)
	}
	if len(entries) == 0 {
		out.Info("No operations recorded yet.")
		return nil
	}
	for _, e := range entries {
		out.Info(formatEntry(e))
	}
	return nil
}

// formatEntry renders one journal entry as a single line.
func formatEntry(e journal.Entry) string {
	mark := "✓"
	if !e.OK() {
		mark = "✗"
	}
	return fmt.Sprintf("%s %s %-13s %-20s %s",
		e.StartedAt.Local().Format(time.DateTime),
		mark,
		e.Operation,
		filepath.Base(e.Path),
		e.Message,
	)
}
