// Package cli provides the command-line interface for svnop.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/svnop/internal/config"
	"github.com/mrz1836/svnop/internal/errors"
	"github.com/mrz1836/svnop/internal/flock"
	"github.com/mrz1836/svnop/internal/journal"
	"github.com/mrz1836/svnop/internal/orchestrator"
	"github.com/mrz1836/svnop/internal/svn"
	"github.com/mrz1836/svnop/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// app holds the collaborators shared by all commands. Tests replace the
// constructors to run commands against a scripted executor.
type app struct {
	flags  *GlobalFlags
	logger zerolog.Logger

	initLogger  func(verbose, quiet bool) zerolog.Logger
	loadConfig  func(ctx context.Context) (*config.Config, error)
	newExecutor func(cfg *config.Config, logger zerolog.Logger) svn.Executor
	openJournal func(ctx context.Context, path string) (*journal.Store, error)
	acquireLock func(ctx context.Context, dir string) (*flock.Lock, error)
	interactive func() bool
	confirm     func(title, description string) (bool, error)
	orchOpts    []orchestrator.Option
}

// appOption configures an app.
type appOption func(*app)

func newApp(flags *GlobalFlags, opts ...appOption) *app {
	a := &app{
		flags:       flags,
		logger:      zerolog.Nop(),
		initLogger:  InitLogger,
		loadConfig:  config.Load,
		newExecutor: newCLIExecutor,
		openJournal: journal.Open,
		acquireLock: lockDirectory,
		interactive: tui.IsInteractive,
		confirm:     tui.Confirm,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// newCLIExecutor runs the configured svn and svnadmin binaries.
func newCLIExecutor(cfg *config.Config, logger zerolog.Logger) svn.Executor {
	return svn.NewCLIRunner(
		svn.WithPrograms(cfg.SVN.Program, cfg.SVN.AdminProgram),
		svn.WithTimeout(cfg.SVN.Timeout),
		svn.WithLogger(logger.With().Str("component", "svn").Logger()),
	)
}

// output creates the Output for the current --output flag.
func (a *app) output(w io.Writer) tui.Output {
	return tui.NewOutput(w, a.flags.Output)
}

// newRootCmd creates and returns the root command for the svnop CLI.
func newRootCmd(flags *GlobalFlags, info BuildInfo, opts ...appOption) *cobra.Command {
	v := viper.New()
	a := newApp(flags, opts...)

	cmd := &cobra.Command{
		Use:   "svnop",
		Short: "svnop - single-file Subversion operations",
		Long: `svnop drives the svn and svnadmin command line tools for one file at a time.

It checks the file's working-copy state before every mutating step, refuses
operations that state does not allow, and reports exactly one message per
operation.

Commands:
  • create: make a local repository and import the file
  • add, commit, revert: everyday changes to a versioned file
  • status, diff, history: read-only views
  • doctor: check the installed svn tools`,
		Version: formatVersion(info),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			ApplyBoundFlags(v, flags)

			if !IsValidOutputFormat(flags.Output) {
				return errors.NewExitCode2Error(
					fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats()))
			}

			a.logger = a.initLogger(flags.Verbose, flags.Quiet)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)

	addOperationCommands(cmd, a)
	addStatusCommand(cmd, a)
	addHistoryCommand(cmd, a)
	addDoctorCommand(cmd, a)
	addConfigCommand(cmd, a)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
// Errors already rendered by a command are not printed again.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	err := cmd.ExecuteContext(ctx)
	CloseLogFile()
	if err != nil && !stderrors.Is(err, errors.ErrOperationFailed) {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	return err
}
