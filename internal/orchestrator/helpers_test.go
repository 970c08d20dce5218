package orchestrator_test

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/svnop/internal/clock"
	"github.com/mrz1836/svnop/internal/config"
	"github.com/mrz1836/svnop/internal/journal"
	"github.com/mrz1836/svnop/internal/orchestrator"
	"github.com/mrz1836/svnop/internal/testutil"
)

const (
	nodeNotFoundFmt = "svn: warning: W155010: The node '%s' was not found.\n\n" +
		"svn: E200009: Could not display info for all targets because some targets don't exist\n"
	notWorkingCopyFmt = "svn: E155007: '%s' is not a working copy\n"
)

// infoOutput renders `svn info` output for path inside the working copy at root.
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

// statusLine renders one `svn status -v` line.
func statusLine(code byte, rev int, path string) string {
	return fmt.Sprintf("%c               %d        %d u            %s\n", code, rev, rev, path)
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []journal.Entry
	err     error
}

func (r *fakeRecorder) Record(_ context.Context, e journal.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return r.err
}

type harness struct {
	orch     *orchestrator.Orchestrator
	fake     *testutil.FakeExecutor
	fs       afero.Fs
	recorder *fakeRecorder
	cfg      *config.Config
}

func fullEnvironment() config.Environment {
	return config.Environment{
		SVN:     config.Available("1.14.2"),
		Admin:   config.Available("1.14.2"),
		RALocal: true,
	}
}

func newHarness(t *testing.T, env config.Environment, files ...string) *harness {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fixtures use POSIX paths")
	}

	fs := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f, []byte("content\n"), 0o644))
	}

	h := &harness{
		fake:     testutil.NewFakeExecutor(t),
		fs:       fs,
		recorder: &fakeRecorder{},
		cfg:      config.DefaultConfig(),
	}
	ids := 0
	h.orch = orchestrator.New(h.fake, h.cfg, env,
		orchestrator.WithLogger(zerolog.Nop()),
		orchestrator.WithFs(fs),
		orchestrator.WithRecorder(h.recorder),
		orchestrator.WithClock(clock.NewStepping(time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC), time.Second)),
		orchestrator.WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("op-%d", ids)
		}),
	)
	return h
}
