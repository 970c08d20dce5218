package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/svnop/internal/config"
	"github.com/mrz1836/svnop/internal/flock"
	"github.com/mrz1836/svnop/internal/orchestrator"
	"github.com/mrz1836/svnop/internal/svn"
	"github.com/mrz1836/svnop/internal/testutil"
)

const (
	notes = "/wc/notes.txt"

	nodeNotFoundFmt = "svn: warning: W155010: The node '%s' was not found.\n\n" +
		"svn: E200009: Could not display info for all targets because some targets don't exist\n"
	notWorkingCopyFmt = "svn: E155007: '%s' is not a working copy\n"

	versionListing = `svn, version 1.14.2 (r1899510)
   compiled Jan 31 2023, 14:54:30 on x86_64-pc-linux-gnu

The following repository access (RA) modules are available:

* ra_svn : Module for accessing a repository using the svn network protocol.
  - handles 'svn' scheme
* ra_local : Module for accessing a repository on local disk.
  - handles 'file' scheme
`
)

// cliEnv runs the root command against a scripted executor and an
// in-memory filesystem. The journal is a real SQLite file in a temp dir.
type cliEnv struct {
	fake *testutil.FakeExecutor
	cfg  *config.Config
	fs   afero.Fs
	out  *bytes.Buffer

	lockErr   error
	lockedDir []string

	interactive   bool
	confirmAnswer bool
	confirmErr    error
	confirmCalls  int
}

func newCLIEnv(t *testing.T, files ...string) *cliEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fixtures use POSIX paths")
	}

	cfg := config.DefaultConfig()
	cfg.Journal.Path = filepath.Join(t.TempDir(), "journal.db")

	fs := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f, []byte("content\n"), 0o644))
	}

	return &cliEnv{
		fake: testutil.NewFakeExecutor(t).Unordered(),
		cfg:  cfg,
		fs:   fs,
		out:  new(bytes.Buffer),
	}
}

func (e *cliEnv) options() []appOption {
	return []appOption{func(a *app) {
		a.initLogger = func(bool, bool) zerolog.Logger { return zerolog.Nop() }
		a.loadConfig = func(context.Context) (*config.Config, error) { return e.cfg, nil }
		a.newExecutor = func(*config.Config, zerolog.Logger) svn.Executor { return e.fake }
		a.acquireLock = func(_ context.Context, dir string) (*flock.Lock, error) {
			e.lockedDir = append(e.lockedDir, dir)
			return nil, e.lockErr
		}
		a.interactive = func() bool { return e.interactive }
		a.confirm = func(string, string) (bool, error) {
			e.confirmCalls++
			return e.confirmAnswer, e.confirmErr
		}
		a.orchOpts = []orchestrator.Option{orchestrator.WithFs(e.fs)}
	}}
}

func (e *cliEnv) run(args ...string) error {
	e.out.Reset()
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{Version: "test"}, e.options()...)
	cmd.SetOut(e.out)
	cmd.SetErr(e.out)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

// expectProbe scripts a healthy svn 1.14 installation with svnadmin.
func (e *cliEnv) expectProbe() {
	e.fake.Expect(svn.TemplateVersion).Stdout("1.14.2\n")
	e.fake.Expect(svn.TemplateVersionFull).Stdout(versionListing)
	e.fake.Expect(svn.TemplateAdminVersion).Stdout("1.14.2\n")
}

func infoOutput(path, root string, rev int) string {
	return fmt.Sprintf(`Path: %s
Working Copy Root Path: %s
URL: file:///repos/wc/trunk
Relative URL: ^/trunk
Repository Root: file:///repos/wc
Repository UUID: 4a8f2c10-2f6d-4c8e-9e1a-0b7c3d5e6f70
Revision: %d
Node Kind: file
Schedule: normal

`, path, root, rev)
}

func statusLine(code byte, rev int, path string) string {
	return fmt.Sprintf("%c               %d        %d u            %s\n", code, rev, rev, path)
}

func (e *cliEnv) expectUntracked(path, root string) {
	e.fake.Expect(svn.TemplateInfo, path).Stderr(fmt.Sprintf(nodeNotFoundFmt, path), 1)
	e.fake.Expect(svn.TemplateInfo, root).Stdout(infoOutput(root, root, 1))
	e.fake.Expect(svn.TemplateStatusVerbose, path).Stderr(fmt.Sprintf(nodeNotFoundFmt, path), 0)
}

func (e *cliEnv) expectVersioned(path, root string, code byte, rev int) {
	e.fake.Expect(svn.TemplateInfo, path).Stdout(infoOutput(path, root, rev))
	e.fake.Expect(svn.TemplateStatusVerbose, path).Stdout(statusLine(code, rev, path))
}
