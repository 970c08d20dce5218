package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mrz1836/svnop/internal/domain"
	"github.com/mrz1836/svnop/internal/errors"
)

func addOperationCommands(root *cobra.Command, a *app) {
	root.AddCommand(
		newCreateCmd(a),
		newAddCmd(a),
		newCommitCmd(a),
		newRevertCmd(a),
		newDiffCmd(a),
	)
}

func newCreateCmd(a *app) *cobra.Command {
	var name, home string

	cmd := &cobra.Command{
		Use:   "create <file>",
		Short: "Create a local repository and import the file",
		Long: `Create a new local repository, check out its trunk over the file's
directory and commit the file as the first revision.

The file must be saved and must not already be inside a working copy.
The repository is created under repository.home_dir and named after the
file's directory unless repository.naming is "fixed" or --name is given.

Examples:
  svnop create notes/todo.txt
  svnop create todo.txt --name todo --home /srv/svn`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOperation(cmd.Context(), cmd.OutOrStdout(), domain.Request{
				Operation: domain.OperationCreateImport,
				Path:      args[0],
				RepoName:  name,
				RepoHome:  home,
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "repository name (overrides repository.naming)")
	cmd.Flags().StringVar(&home, "home", "", "directory holding repositories (overrides repository.home_dir)")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>",
		Short: "Schedule an untracked file for addition",
		Long: `Schedule an untracked file, and any unversioned parent directories, for
addition. The change reaches the repository with the next commit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOperation(cmd.Context(), cmd.OutOrStdout(), domain.Request{
				Operation: domain.OperationAdd,
				Path:      args[0],
			})
		},
	}
}

func newCommitCmd(a *app) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "commit <file>",
		Short: "Commit an added or modified file",
		Long: `Commit a single added or modified file.

When svn refuses the commit because a parent directory is scheduled for
addition but not part of the commit, svnop retries once with every added
ancestor directory included.

The log message defaults to messages.commit, with %s replaced by the file name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOperation(cmd.Context(), cmd.OutOrStdout(), domain.Request{
				Operation: domain.OperationCommit,
				Path:      args[0],
				Message:   message,
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "log message (default: messages.commit)")
	return cmd
}

func newRevertCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "revert <file>",
		Short: "Discard local changes or step back one revision",
		Long: `Revert a file.

A modified file loses its local changes. An unmodified file is updated to the
revision before its current one. Both forms overwrite the file on disk, so
svnop asks for confirmation on a terminal. Use --force to skip the prompt; it
is required when stdin is not a terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if err := a.confirmRevert(args[0]); err != nil {
					return fail(a.output(cmd.OutOrStdout()), err)
				}
			}
			return a.runOperation(cmd.Context(), cmd.OutOrStdout(), domain.Request{
				Operation: domain.OperationRevert,
				Path:      args[0],
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}

func newDiffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <file>",
		Short: "Summarize local changes against the base revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOperation(cmd.Context(), cmd.OutOrStdout(), domain.Request{
				Operation: domain.OperationDiff,
				Path:      args[0],
			})
		},
	}
}

// confirmRevert asks before a revert overwrites the file.
func (a *app) confirmRevert(path string) error {
	if !a.interactive() {
		return errors.ErrNonInteractiveMode
	}
	ok, err := a.confirm(
		fmt.Sprintf("Revert %s?", filepath.Base(path)),
		"Local changes are discarded. An unmodified file is updated to its previous revision.",
	)
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrOperationCanceled
	}
	return nil
}

// runOperation probes the environment, runs one request through the
// orchestrator and prints its single terminal message. Mutating requests
// hold the lock for the file's directory while they run.
func (a *app) runOperation(ctx context.Context, w io.Writer, req domain.Request) error {
	out := a.output(w)

	s, err := a.openSession(ctx, sessionOptions{probe: true, journal: true})
	defer s.Close()
	if err != nil {
		return fail(out, err)
	}

	if req.Operation.Mutating() {
		lock, err := a.acquireLock(ctx, filepath.Dir(req.Path))
		if err != nil {
			return fail(out, err)
		}
		defer func() {
			if err := lock.Release(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to release operation lock")
			}
		}()
	}

	report := s.orchestrator(a.orchOpts...).Run(ctx, req)
	out.Report(report)
	if !report.OK() {
		return fmt.Errorf("%w: %w", errors.ErrOperationFailed, report.Err)
	}
	return nil
}
