package testutil

import (
	"context"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/mrz1836/svnop/internal/svn"
)

// Call records one invocation seen by FakeExecutor.
type Call struct {
	Template svn.Template
	Args     []string
	Dir      string
}

// String renders the call roughly as it would appear on a command line.
func (c Call) String() string {
	return c.Template.String() + " " + strings.Join(c.Args, " ")
}

// Expectation is one scripted response. Calls must arrive in the order the
// expectations were registered.
type Expectation struct {
	template svn.Template
	args     []string
	anyArgs  bool
	result   svn.Result
	err      error
}

// Stdout sets the standard output returned for this call.
func (e *Expectation) Stdout(s string) *Expectation {
	e.result.Stdout = s
	return e
}

// Stderr sets the standard error and exit code returned for this call.
func (e *Expectation) Stderr(s string, exitCode int) *Expectation {
	e.result.Stderr = s
	e.result.ExitCode = exitCode
	return e
}

// Exit sets the exit code returned for this call.
func (e *Expectation) Exit(code int) *Expectation {
	e.result.ExitCode = code
	return e
}

// Fails makes the executor return err instead of a result.
func (e *Expectation) Fails(err error) *Expectation {
	e.err = err
	return e
}

// AnyArgs accepts any argument list for this call.
func (e *Expectation) AnyArgs() *Expectation {
	e.anyArgs = true
	return e
}

// FakeExecutor is a scripted svn.Executor. Unexpected or out-of-order calls
// fail the test, and unconsumed expectations are reported at cleanup.
type FakeExecutor struct {
	t            testing.TB
	mu           sync.Mutex
	expectations []*Expectation
	calls        []Call
	unordered    bool
}

// NewFakeExecutor creates a FakeExecutor bound to t.
func NewFakeExecutor(t testing.TB) *FakeExecutor {
	t.Helper()
	f := &FakeExecutor{t: t}
	t.Cleanup(func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, e := range f.expectations {
			t.Errorf("expected svn call never made: %s %s", e.template, strings.Join(e.args, " "))
		}
	})
	return f
}

// Unordered lets calls match any pending expectation, for code that fans
// commands out concurrently.
func (f *FakeExecutor) Unordered() *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unordered = true
	return f
}

// Expect registers the next expected call.
func (f *FakeExecutor) Expect(t svn.Template, args ...string) *Expectation {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := &Expectation{template: t, args: args}
	f.expectations = append(f.expectations, e)
	return e
}

// Run implements svn.Executor.
func (f *FakeExecutor) Run(ctx context.Context, t svn.Template, args []string, dir string) (svn.Result, error) {
	if err := ctx.Err(); err != nil {
		return svn.Result{}, err
	}
	if _, err := t.Argv(args); err != nil {
		f.t.Errorf("invalid svn call %s: %v", t, err)
		return svn.Result{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	call := Call{Template: t, Args: slices.Clone(args), Dir: dir}
	f.calls = append(f.calls, call)

	if len(f.expectations) == 0 {
		f.t.Errorf("unexpected svn call: %s", call)
		return svn.Result{}, ErrMockSpawnFailed
	}

	idx := 0
	if f.unordered {
		idx = slices.IndexFunc(f.expectations, func(e *Expectation) bool { return e.matches(t, args) })
		if idx < 0 {
			f.t.Errorf("unexpected svn call: %s", call)
			return svn.Result{}, ErrMockSpawnFailed
		}
	}
	next := f.expectations[idx]
	f.expectations = slices.Delete(f.expectations, idx, idx+1)

	if !next.matches(t, args) {
		f.t.Errorf("svn call = %s; want %s %s", call, next.template, strings.Join(next.args, " "))
		return svn.Result{}, ErrMockSpawnFailed
	}
	return next.result, next.err
}

func (e *Expectation) matches(t svn.Template, args []string) bool {
	return e.template == t && (e.anyArgs || slices.Equal(e.args, args))
}

// Calls returns the invocations seen so far.
func (f *FakeExecutor) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// Templates returns the templates of the invocations seen so far.
func (f *FakeExecutor) Templates() []svn.Template {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]svn.Template, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Template
	}
	return out
}

var _ svn.Executor = (*FakeExecutor)(nil)
