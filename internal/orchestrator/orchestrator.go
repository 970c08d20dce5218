// Package orchestrator sequences one svnop operation end to end: read the
// file's current state, decide whether the operation is legal, run the svn
// commands and turn the outcome into a single report.
//
// Every request reads status fresh. Nothing between the status read and
// the mutating command stops another process from changing the file or
// the working copy; svn's own working-copy lock is the only guard.
//
// Import rules:
//   - CAN import: internal/svn, internal/status, internal/ancestry, internal/precondition,
//     internal/config, internal/journal, internal/diffstat, internal/domain, internal/errors, std lib
//   - MUST NOT import: internal/cli, internal/tui
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/mrz1836/svnop/internal/clock"
	"github.com/mrz1836/svnop/internal/config"
	"github.com/mrz1836/svnop/internal/ctxutil"
	"github.com/mrz1836/svnop/internal/domain"
	svnerrors "github.com/mrz1836/svnop/internal/errors"
	"github.com/mrz1836/svnop/internal/journal"
	"github.com/mrz1836/svnop/internal/status"
	"github.com/mrz1836/svnop/internal/svn"
)

// Orchestrator runs operation requests against one svn installation.
// The configuration and environment are fixed at construction.
type Orchestrator struct {
	exec     svn.Executor
	reader   *status.Reader
	cfg      *config.Config
	env      config.Environment
	logger   zerolog.Logger
	fs       afero.Fs
	recorder journal.Recorder
	clock    clock.Clock
	newID    func() string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithFs sets the filesystem used for the saved-file check and for
// creating the repository home.
func WithFs(fs afero.Fs) Option {
	return func(o *Orchestrator) {
		o.fs = fs
	}
}

// WithRecorder sets where finished reports are journaled.
func WithRecorder(r journal.Recorder) Option {
	return func(o *Orchestrator) {
		o.recorder = r
	}
}

// WithClock sets the clock used to stamp reports.
func WithClock(c clock.Clock) Option {
	return func(o *Orchestrator) {
		o.clock = c
	}
}

// WithIDGenerator sets the generator of report IDs.
func WithIDGenerator(gen func() string) Option {
	return func(o *Orchestrator) {
		o.newID = gen
	}
}

// New creates an Orchestrator. cfg must be a validated configuration and
// env the result of the startup probe.
func New(exec svn.Executor, cfg *config.Config, env config.Environment, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		exec:   exec,
		cfg:    cfg,
		env:    env,
		logger: zerolog.Nop(),
		fs:     afero.NewOsFs(),
		clock:  clock.RealClock{},
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With().Str("component", "orchestrator").Logger()
	o.reader = status.NewReader(exec, o.logger)
	return o
}

// outcome is what a successful flow reports.
type outcome struct {
	text      string
	paths     []string
	recovered bool
	detail    string
}

// Run executes req and returns its report. Run never panics or returns an
// error for expected conditions: every path ends in exactly one INFO or
// ERROR message on the report.
func (o *Orchestrator) Run(ctx context.Context, req domain.Request) domain.Report {
	report := domain.Report{
		ID:        o.newID(),
		Operation: req.Operation,
		Path:      req.Path,
		StartedAt: o.clock.Now(),
	}
	logger := o.logger.With().Str("op_id", report.ID).Str("operation", req.Operation.String()).Logger()

	out, err := o.dispatch(ctx, &report, req, logger)
	report.FinishedAt = o.clock.Now()

	if err != nil {
		report.Err = err
		report.Message = domain.Message{Severity: domain.SeverityError, Text: err.Error()}
		event := logger.Warn().Err(err).Str("path", report.Path).Dur("duration", report.Duration())
		var cmdErr *svn.CommandError
		if errors.As(err, &cmdErr) {
			event = event.Str("error_type", cmdErr.Type().String())
		}
		event.Msg("operation failed")
	} else {
		report.Message = domain.Message{Severity: domain.SeverityInfo, Text: out.text}
		report.Paths = out.paths
		report.Recovered = out.recovered
		report.Detail = out.detail
		logger.Info().
			Str("path", report.Path).
			Strs("paths", out.paths).
			Bool("recovered", out.recovered).
			Dur("duration", report.Duration()).
			Msg("operation succeeded")
	}

	o.record(ctx, report, logger)
	return report
}

func (o *Orchestrator) dispatch(ctx context.Context, report *domain.Report, req domain.Request, logger zerolog.Logger) (outcome, error) {
	if err := ctxutil.CanceledDuring(ctx, req.Operation.Label()); err != nil {
		return outcome{}, err
	}
	if req.Path == "" {
		return outcome{}, fmt.Errorf("%w: file path", svnerrors.ErrEmptyValue)
	}
	path, err := filepath.Abs(req.Path)
	if err != nil {
		return outcome{}, fmt.Errorf("failed to resolve %s: %w", req.Path, err)
	}
	report.Path = path

	switch req.Operation {
	case domain.OperationCreateImport:
		return o.createAndImport(ctx, req, path, logger)
	case domain.OperationAdd:
		return o.add(ctx, path)
	case domain.OperationCommit:
		return o.commit(ctx, req, path, logger)
	case domain.OperationRevert:
		return o.revert(ctx, path)
	case domain.OperationDiff:
		return o.diff(ctx, path)
	default:
		return outcome{}, fmt.Errorf("%w: %q", svnerrors.ErrUnknownOperation, req.Operation)
	}
}

// record offers the report to the journal. A journal failure is logged and
// never changes the report.
func (o *Orchestrator) record(ctx context.Context, report domain.Report, logger zerolog.Logger) {
	if o.recorder == nil {
		return
	}
	if err := o.recorder.Record(context.WithoutCancel(ctx), journal.EntryFromReport(report)); err != nil {
		logger.Warn().Err(err).Msg("failed to journal operation")
	}
}

// CreateAndImport creates a repository for the file's directory, checks it
// out in place and commits the file as the first revision.
func (o *Orchestrator) CreateAndImport(ctx context.Context, path string) domain.Report {
	return o.Run(ctx, domain.Request{Operation: domain.OperationCreateImport, Path: path})
}

// Add schedules an untracked file, and any unversioned parents, for addition.
func (o *Orchestrator) Add(ctx context.Context, path string) domain.Report {
	return o.Run(ctx, domain.Request{Operation: domain.OperationAdd, Path: path})
}

// Commit commits an added or modified file. An empty message uses the
// configured template.
func (o *Orchestrator) Commit(ctx context.Context, path, message string) domain.Report {
	return o.Run(ctx, domain.Request{Operation: domain.OperationCommit, Path: path, Message: message})
}

// RevertToPrevious discards local edits of a modified file, or steps an
// unmodified file back one revision.
func (o *Orchestrator) RevertToPrevious(ctx context.Context, path string) domain.Report {
	return o.Run(ctx, domain.Request{Operation: domain.OperationRevert, Path: path})
}

// Diff summarizes a file's local changes.
func (o *Orchestrator) Diff(ctx context.Context, path string) domain.Report {
	return o.Run(ctx, domain.Request{Operation: domain.OperationDiff, Path: path})
}

// command runs one template and classifies the result. Environment-level
// failures come back unchanged; error outcomes as *svn.CommandError.
func (o *Orchestrator) command(ctx context.Context, t svn.Template, args ...string) (svn.Classification, error) {
	res, err := o.exec.Run(ctx, t, args, "")
	if err != nil {
		return svn.Classification{}, err
	}
	c := svn.Classify(res)
	return c, c.Err(t)
}

// isCommandError reports whether err is an svn error outcome carrying code.
func isCommandError(err error, code svn.Code) (*svn.CommandError, bool) {
	var ce *svn.CommandError
	if errors.As(err, &ce) && ce.HasCode(code) {
		return ce, true
	}
	return nil, false
}
