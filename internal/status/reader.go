package status

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mrz1836/svnop/internal/ctxutil"
	"github.com/mrz1836/svnop/internal/domain"
	svnerrors "github.com/mrz1836/svnop/internal/errors"
	"github.com/mrz1836/svnop/internal/svn"
)

// Reader queries svn for the state of paths. Every call issues fresh
// commands; nothing is cached between calls since status can change at any time.
type Reader struct {
	exec   svn.Executor
	logger zerolog.Logger
}

// NewReader creates a Reader backed by exec.
func NewReader(exec svn.Executor, logger zerolog.Logger) *Reader {
	return &Reader{exec: exec, logger: logger}
}

// FileStatus returns the status code of path. A path whose parent is not
// versioned yet (node not found) is Untracked.
func (r *Reader) FileStatus(ctx context.Context, path string) (Code, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return 0, err
	}

	c, err := r.run(ctx, svn.TemplateStatusVerbose, path, svn.CodeNodeNotFound)
	if err != nil {
		return 0, err
	}
	if c.Outcome == svn.OutcomeBenign {
		r.logger.Debug().Str("path", path).Str("code", string(c.Code)).Msg("node not found, treating as untracked")
		return Untracked, nil
	}
	return ParseFirstCode(c.Payload)
}

// Revision returns the revision of path, or 0 when it has never been committed.
func (r *Reader) Revision(ctx context.Context, path string) (int, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return 0, err
	}

	c, err := r.run(ctx, svn.TemplateInfo, path, svn.CodeNodeNotFound)
	if err != nil {
		return 0, err
	}
	if c.Outcome == svn.OutcomeBenign {
		return 0, nil
	}
	return ParseRevision(c.Payload), nil
}

// WorkingCopyRoot returns the root of the working copy containing path.
// When path itself is not versioned the nearest ancestor directory is asked
// instead.
func (r *Reader) WorkingCopyRoot(ctx context.Context, path string) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}

	current := filepath.Clean(path)
	for {
		c, err := r.run(ctx, svn.TemplateInfo, current, svn.CodeNodeNotFound)
		if err != nil {
			return "", err
		}
		if c.Outcome != svn.OutcomeBenign {
			return ParseWorkingCopyRoot(c.Payload)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("%w: %s", svnerrors.ErrNotWorkingCopy, path)
		}
		current = parent
	}
}

// RecursiveStatus returns the raw non-verbose status listing of root.
// A clean working copy yields an empty listing.
func (r *Reader) RecursiveStatus(ctx context.Context, root string) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}

	c, err := r.run(ctx, svn.TemplateStatus, root)
	if err != nil {
		return "", err
	}
	return c.Payload, nil
}

// WorkingCopy returns the working copy root and the revision of path.
func (r *Reader) WorkingCopy(ctx context.Context, path string) (domain.WorkingCopy, error) {
	root, err := r.WorkingCopyRoot(ctx, path)
	if err != nil {
		return domain.WorkingCopy{}, err
	}
	rev, err := r.Revision(ctx, path)
	if err != nil {
		return domain.WorkingCopy{}, err
	}
	return domain.WorkingCopy{RootPath: root, Revision: rev}, nil
}

// run executes a single-path query in the path's directory and turns
// error outcomes into errors. E155007 maps to ErrNotWorkingCopy.
func (r *Reader) run(ctx context.Context, t svn.Template, path string, benign ...svn.Code) (svn.Classification, error) {
	res, err := r.exec.Run(ctx, t, []string{path}, "")
	if err != nil {
		return svn.Classification{}, fmt.Errorf("svn %s %s: %w", t, path, err)
	}

	c := svn.Classify(res, benign...)
	cmdErr := c.Err(t)
	if cmdErr == nil {
		return c, nil
	}

	var ce *svn.CommandError
	if errors.As(cmdErr, &ce) && ce.HasCode(svn.CodeNotWorkingCopy) {
		return c, fmt.Errorf("%w: %w", svnerrors.ErrNotWorkingCopy, cmdErr)
	}
	return c, cmdErr
}

// IsNotWorkingCopy reports whether err means the path is outside any working copy.
func IsNotWorkingCopy(err error) bool {
	return errors.Is(err, svnerrors.ErrNotWorkingCopy)
}
