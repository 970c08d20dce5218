package svn

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/svnop/internal/constants"
	"github.com/mrz1836/svnop/internal/ctxutil"
	svnerrors "github.com/mrz1836/svnop/internal/errors"
	"github.com/mrz1836/svnop/internal/logging"
)

// waitDelay bounds how long Wait keeps reading pipes after the process is killed.
const waitDelay = 2 * time.Second

// Executor runs one command template to completion.
// A non-zero exit status is reported through Result, not as an error.
// Errors are reserved for environment-level failures: a missing executable,
// a timeout, or cancellation.
type Executor interface {
	Run(ctx context.Context, t Template, args []string, dir string) (Result, error)
}

// CLIRunner executes svn and svnadmin as subprocesses.
type CLIRunner struct {
	program      string
	adminProgram string
	timeout      time.Duration
	logger       zerolog.Logger
	lookPath     func(string) (string, error)
}

// RunnerOption configures a CLIRunner.
type RunnerOption func(*CLIRunner)

// WithPrograms overrides the executables used for the client and admin tool.
func WithPrograms(program, adminProgram string) RunnerOption {
	return func(r *CLIRunner) {
		if program != "" {
			r.program = program
		}
		if adminProgram != "" {
			r.adminProgram = adminProgram
		}
	}
}

// WithTimeout bounds every invocation. Non-positive values keep the default.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *CLIRunner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger used for per-command debug output.
func WithLogger(logger zerolog.Logger) RunnerOption {
	return func(r *CLIRunner) {
		r.logger = logger
	}
}

// NewCLIRunner creates a runner using svn and svnadmin from PATH.
func NewCLIRunner(opts ...RunnerOption) *CLIRunner {
	r := &CLIRunner{
		program:      constants.ToolSVN,
		adminProgram: constants.ToolSVNAdmin,
		timeout:      constants.DefaultCommandTimeout,
		logger:       zerolog.Nop(),
		lookPath:     exec.LookPath,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the template with args in dir. Both output streams are
// captured into separate buffers that exec drains concurrently, so large
// output on either stream cannot block the child.
func (r *CLIRunner) Run(ctx context.Context, t Template, args []string, dir string) (Result, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return Result{}, err
	}

	argv, err := t.Argv(args)
	if err != nil {
		return Result{}, err
	}

	program := r.program
	if t.Tool() == ToolAdmin {
		program = r.adminProgram
	}
	path, err := r.lookPath(program)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", svnerrors.ErrToolUnavailable, program, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, path, argv...) //#nosec G204 -- argv comes from a fixed template table
	cmd.Dir = dir
	// Label parsing expects untranslated messages.
	cmd.Env = append(os.Environ(), "LC_MESSAGES=C")
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if runErr != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return res, fmt.Errorf("svn %s after %s: %w", t, r.timeout, svnerrors.ErrCommandTimeout)
		}
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			if errors.Is(runErr, fs.ErrPermission) {
				return res, fmt.Errorf("%w: %s: %w", svnerrors.ErrToolUnavailable, program, runErr)
			}
			return res, fmt.Errorf("svn %s: %w: %w", t, svnerrors.ErrEnvironment, runErr)
		}
		res.ExitCode = exitErr.ExitCode()
	}

	r.logger.Debug().
		Str("template", t.String()).
		Strs("args", logging.FilterArgs(argv)).
		Str("dir", dir).
		Int("exit_code", res.ExitCode).
		Int("stdout_bytes", len(res.Stdout)).
		Int("stderr_bytes", len(res.Stderr)).
		Dur("duration", time.Since(start)).
		Msg("svn command finished")

	return res, nil
}

var _ Executor = (*CLIRunner)(nil)
