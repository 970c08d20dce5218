package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/svnop/internal/ancestry"
	"github.com/mrz1836/svnop/internal/diffstat"
	"github.com/mrz1836/svnop/internal/domain"
	svnerrors "github.com/mrz1836/svnop/internal/errors"
	"github.com/mrz1836/svnop/internal/precondition"
	"github.com/mrz1836/svnop/internal/status"
	"github.com/mrz1836/svnop/internal/svn"
)

// DeniedError is returned when the validator refuses an operation. No svn
// command that changes anything has run.
type DeniedError struct {
	Operation domain.Operation
	Path      string
	Reason    string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("Cannot %s %s: %s", e.Operation.Label(), filepath.Base(e.Path), e.Reason)
}

// Unwrap returns ErrPrecondition, joined with ErrNotWorkingCopy when that
// is the reason.
func (e *DeniedError) Unwrap() error {
	return precondition.Decision{Reason: e.Reason}.Err()
}

// snapshot is the freshly read state of one file.
type snapshot struct {
	state precondition.State
	root  string
}

// inspect reads what the validator needs for op. Create-and-import asks
// about the file's directory; every other operation about the file itself.
func (o *Orchestrator) inspect(ctx context.Context, op domain.Operation, path string) (snapshot, error) {
	snap := snapshot{state: precondition.State{Saved: o.saved(path)}}

	target := path
	if op == domain.OperationCreateImport {
		target = filepath.Dir(path)
	}
	root, err := o.reader.WorkingCopyRoot(ctx, target)
	switch {
	case status.IsNotWorkingCopy(err):
		snap.state.NoWorkingCopy = true
		return snap, nil
	case err != nil:
		return snap, err
	}
	snap.root = root
	if op == domain.OperationCreateImport {
		return snap, nil
	}

	code, err := o.reader.FileStatus(ctx, path)
	if status.IsNotWorkingCopy(err) {
		snap.state.NoWorkingCopy = true
		return snap, nil
	}
	if err != nil {
		return snap, err
	}
	snap.state.Code = code

	if precondition.NeedsRevision(op) {
		rev, err := o.reader.Revision(ctx, path)
		if err != nil {
			return snap, err
		}
		snap.state.Revision = rev
	}
	return snap, nil
}

// validate inspects path and applies the validator.
func (o *Orchestrator) validate(ctx context.Context, op domain.Operation, path string) (snapshot, error) {
	snap, err := o.inspect(ctx, op, path)
	if err != nil {
		return snap, err
	}
	if d := precondition.Check(op, snap.state); !d.Allowed {
		return snap, &DeniedError{Operation: op, Path: path, Reason: d.Reason}
	}
	return snap, nil
}

// saved reports whether path is a regular file on disk.
func (o *Orchestrator) saved(path string) bool {
	info, err := o.fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (o *Orchestrator) add(ctx context.Context, path string) (outcome, error) {
	if _, err := o.validate(ctx, domain.OperationAdd, path); err != nil {
		return outcome{}, err
	}
	if _, err := o.command(ctx, svn.TemplateAdd, path); err != nil {
		return outcome{}, err
	}
	return outcome{
		text:  fmt.Sprintf("Added %s.", filepath.Base(path)),
		paths: []string{path},
	}, nil
}

func (o *Orchestrator) commit(ctx context.Context, req domain.Request, path string, logger zerolog.Logger) (outcome, error) {
	snap, err := o.validate(ctx, domain.OperationCommit, path)
	if err != nil {
		return outcome{}, err
	}

	message := req.Message
	if message == "" {
		message = strings.ReplaceAll(o.cfg.Messages.Commit, "%s", filepath.Base(path))
	}

	c, err := o.command(ctx, svn.TemplateCommit, message, path)
	if ce, ok := isCommandError(err, svn.CodeParentNotAdded); ok {
		logger.Info().Str("code", string(ce.Code)).Str("root", snap.root).Msg("parents not committed, retrying with ancestors")
		return o.recoverCommit(ctx, snap.root, path, message, ce)
	}
	if err != nil {
		return outcome{}, err
	}
	return outcome{
		text:  committedText([]string{path}, snap.root, c.Payload),
		paths: []string{path},
	}, nil
}

// recoverCommit makes the single retry for a commit that failed because
// added ancestors were left out. Whatever it produces is final.
func (o *Orchestrator) recoverCommit(ctx context.Context, root, path, message string, cause error) (outcome, error) {
	listing, err := o.reader.RecursiveStatus(ctx, root)
	if err != nil {
		return outcome{}, fmt.Errorf("%w: %w", svnerrors.ErrRecoverableCommit, err)
	}
	paths, err := ancestry.BuildCommitListWithParents(path, root, listing)
	if err != nil {
		return outcome{}, fmt.Errorf("%w: %w", svnerrors.ErrRecoverableCommit, err)
	}
	if len(paths) == 0 {
		return outcome{}, fmt.Errorf("%w: no added ancestors of %s: %w", svnerrors.ErrRecoverableCommit, path, cause)
	}

	c, err := o.command(ctx, svn.TemplateCommit, append([]string{message}, paths...)...)
	if err != nil {
		return outcome{}, fmt.Errorf("%w: %w", svnerrors.ErrRecoverableCommit, err)
	}
	return outcome{
		text:      committedText(paths, root, c.Payload),
		paths:     paths,
		recovered: true,
	}, nil
}

// committedText names every committed path relative to the working copy root.
func committedText(paths []string, root, output string) string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
		if rel, err := filepath.Rel(root, p); err == nil && root != "" {
			names[i] = filepath.ToSlash(rel)
		}
	}
	text := "Committed " + strings.Join(names, ", ")
	if rev := status.ParseCommittedRevision(output); rev > 0 {
		text += " at revision " + strconv.Itoa(rev)
	}
	return text + "."
}

func (o *Orchestrator) revert(ctx context.Context, path string) (outcome, error) {
	snap, err := o.validate(ctx, domain.OperationRevert, path)
	if err != nil {
		return outcome{}, err
	}

	name := filepath.Base(path)
	if snap.state.Code == status.Modified {
		if _, err := o.command(ctx, svn.TemplateRevert, path); err != nil {
			return outcome{}, err
		}
		return outcome{
			text:  fmt.Sprintf("Discarded local changes to %s.", name),
			paths: []string{path},
		}, nil
	}

	target := snap.state.Revision - 1
	if _, err := o.command(ctx, svn.TemplateUpdateToRevision, strconv.Itoa(target), path); err != nil {
		return outcome{}, err
	}
	return outcome{
		text:  fmt.Sprintf("Updated %s to revision %d.", name, target),
		paths: []string{path},
	}, nil
}

func (o *Orchestrator) diff(ctx context.Context, path string) (outcome, error) {
	if _, err := o.validate(ctx, domain.OperationDiff, path); err != nil {
		return outcome{}, err
	}

	c, err := o.command(ctx, svn.TemplateDiff, path)
	if err != nil {
		return outcome{}, err
	}
	summary, err := diffstat.Summarize(c.Payload)
	if err != nil {
		return outcome{}, err
	}
	return outcome{
		text:   fmt.Sprintf("%s: %d added, %d deleted.", filepath.Base(path), summary.Added(), summary.Deleted()),
		paths:  []string{path},
		detail: summary.String(),
	}, nil
}
