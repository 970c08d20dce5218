package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mrz1836/svnop/internal/config"
	"github.com/mrz1836/svnop/internal/errors"
	"github.com/mrz1836/svnop/internal/journal"
	"github.com/mrz1836/svnop/internal/orchestrator"
	"github.com/mrz1836/svnop/internal/svn"
	"github.com/mrz1836/svnop/internal/tui"
)

// session is everything one command needs: the loaded configuration, an
// executor, the probed environment and, when enabled, the journal.
type session struct {
	cfg       *config.Config
	exec      svn.Executor
	env       config.Environment
	detection *config.ToolDetectionResult
	store     *journal.Store
	logger    zerolog.Logger
}

// sessionOptions selects the optional parts of a session.
type sessionOptions struct {
	probe   bool
	journal bool
}

// openSession loads configuration and, as requested, probes the tools and
// opens the journal. A journal that cannot be opened is logged and skipped;
// operations never fail because history is unavailable.
func (a *app) openSession(ctx context.Context, opts sessionOptions) (*session, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:    cfg,
		exec:   a.newExecutor(cfg, a.logger),
		logger: a.logger,
	}

	if opts.probe {
		env, detection, err := config.Probe(ctx, config.NewToolDetector(s.exec, cfg.SVN))
		s.env, s.detection = env, detection
		if err != nil {
			return s, err
		}
		a.logger.Debug().
			Str("svn", env.SVN.Version).
			Bool("svnadmin", env.Admin.Available).
			Bool("ra_local", env.RALocal).
			Msg("environment probed")
	}

	if opts.journal && cfg.Journal.Enabled {
		if err := s.attachJournal(ctx, a.openJournal); err != nil {
			a.logger.Warn().Err(err).Msg("journal unavailable, continuing without history")
		}
	}
	return s, nil
}

func (s *session) attachJournal(ctx context.Context, open func(context.Context, string) (*journal.Store, error)) error {
	path, err := s.cfg.JournalPath()
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrJournal, err)
	}
	store, err := open(ctx, path)
	if err != nil {
		return err
	}
	s.store = store
	return nil
}

// Close releases the journal.
func (s *session) Close() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to close journal")
	}
}

// orchestrator builds an Orchestrator over the session.
func (s *session) orchestrator(extra ...orchestrator.Option) *orchestrator.Orchestrator {
	opts := []orchestrator.Option{orchestrator.WithLogger(s.logger)}
	if s.store != nil {
		opts = append(opts, orchestrator.WithRecorder(s.store))
	}
	return orchestrator.New(s.exec, s.cfg, s.env, append(opts, extra...)...)
}

// fail renders err and returns it marked as already reported.
func fail(out tui.Output, err error) error {
	out.Error(err)
	return fmt.Errorf("%w: %w", errors.ErrOperationFailed, err)
}
