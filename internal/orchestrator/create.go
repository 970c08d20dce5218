package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/mrz1836/svnop/internal/config"
	"github.com/mrz1836/svnop/internal/constants"
	"github.com/mrz1836/svnop/internal/domain"
	svnerrors "github.com/mrz1836/svnop/internal/errors"
	"github.com/mrz1836/svnop/internal/svn"
)

// step is one command of the create-and-import recipe.
type step struct {
	name     string
	template svn.Template
	args     []string
}

// createAndImport turns the file's directory into a working copy of a new
// local repository and commits the file as its first content. The first
// failing step ends the operation; earlier steps are not undone.
func (o *Orchestrator) createAndImport(ctx context.Context, req domain.Request, path string, logger zerolog.Logger) (outcome, error) {
	if _, err := o.validate(ctx, domain.OperationCreateImport, path); err != nil {
		return outcome{}, err
	}
	if err := o.env.CanCreateRepository(); err != nil {
		return outcome{}, err
	}

	dir := filepath.Dir(path)
	loc, err := o.location(req, dir)
	if err != nil {
		return outcome{}, err
	}
	if err := o.fs.MkdirAll(loc.RootDirectory, 0o750); err != nil {
		return outcome{}, fmt.Errorf("%w: failed to create repository home %s: %w",
			svnerrors.ErrEnvironment, loc.RootDirectory, err)
	}
	if exists, _ := afero.Exists(o.fs, loc.Path()); exists {
		return outcome{}, &DeniedError{
			Operation: domain.OperationCreateImport,
			Path:      path,
			Reason:    fmt.Sprintf("repository %s already exists", loc.Path()),
		}
	}

	layout := o.cfg.Repository.Layout
	urls := make([]string, len(layout))
	for i, d := range layout {
		urls[i] = loc.URL() + "/" + d
	}

	steps := []step{
		{"create repository", svn.TemplateAdminCreate, []string{loc.Path()}},
		{"create layout", svn.TemplateMkdir, append([]string{o.cfg.Messages.Layout}, urls...)},
		{"check out", svn.TemplateCheckout, []string{urls[0], dir}},
		{"add", svn.TemplateAdd, []string{path}},
		{"commit", svn.TemplateCommit, []string{o.cfg.Messages.Import, path}},
		{"update", svn.TemplateUpdate, []string{dir}},
	}
	for _, s := range steps {
		logger.Debug().Str("step", s.name).Msg("create and import")
		if _, err := o.command(ctx, s.template, s.args...); err != nil {
			logger.Warn().Str("step", s.name).Str("repository", loc.Path()).Msg("create and import stopped")
			return outcome{}, err
		}
	}

	return outcome{
		text:  fmt.Sprintf("Imported %s into %s.", filepath.Base(path), urls[0]),
		paths: []string{path},
	}, nil
}

// location resolves where the new repository goes. Request overrides win
// over the configured home directory and naming policy.
func (o *Orchestrator) location(req domain.Request, dir string) (domain.RepositoryLocation, error) {
	var (
		home string
		err  error
	)
	if req.RepoHome != "" {
		home, err = config.ExpandHome(req.RepoHome)
		if err == nil {
			home, err = filepath.Abs(home)
		}
	} else {
		home, err = o.cfg.RepositoryHome()
	}
	if err != nil {
		return domain.RepositoryLocation{}, fmt.Errorf("failed to resolve repository home: %w", err)
	}

	name := req.RepoName
	if name == "" {
		name = filepath.Base(dir)
		if o.cfg.Repository.Naming == constants.NamingFixed {
			name = o.cfg.Repository.Name
		}
	}
	if name == "" || name == "." || name == string(filepath.Separator) {
		return domain.RepositoryLocation{}, fmt.Errorf("%w: repository name", svnerrors.ErrEmptyValue)
	}
	return domain.RepositoryLocation{RootDirectory: home, Name: name}, nil
}
