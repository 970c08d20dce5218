// Package svn runs Subversion command-line tools and classifies their output.
//
// Every invocation goes through a fixed set of command templates so that the
// argv shape sent to svn is known statically. Callers never assemble raw
// argument lists.
package svn

import (
	"fmt"

	svnerrors "github.com/mrz1836/svnop/internal/errors"
)

// Template identifies one statically known svn or svnadmin invocation.
type Template int

// Supported command templates. Argument placeholders are listed in order.
const (
	// TemplateVersion is `svn --version --quiet`.
	TemplateVersion Template = iota
	// TemplateVersionFull is `svn --version`, which also lists RA modules.
	TemplateVersionFull
	// TemplateInfo is `svn info [path]`.
	TemplateInfo
	// TemplateStatusVerbose is `svn status -v [path]`.
	TemplateStatusVerbose
	// TemplateStatus is `svn status [path]`.
	TemplateStatus
	// TemplateAdminVersion is `svnadmin --version --quiet`.
	TemplateAdminVersion
	// TemplateAdminCreate is `svnadmin create <repoPath>`.
	TemplateAdminCreate
	// TemplateCommit is `svn commit -m <message> <path...>`.
	TemplateCommit
	// TemplateAdd is `svn add --parents <path>`.
	TemplateAdd
	// TemplateUpdate is `svn update [path]`.
	TemplateUpdate
	// TemplateUpdateToRevision is `svn update -r <revision> <path>`.
	TemplateUpdateToRevision
	// TemplateRevert is `svn revert <path>`.
	TemplateRevert
	// TemplateMkdir is `svn mkdir -m <message> <uri> <uri> <uri>`.
	TemplateMkdir
	// TemplateCheckout is `svn checkout <uri> <path>`.
	TemplateCheckout
	// TemplateDiff is `svn diff <path>`.
	TemplateDiff
)

// Tool selects which executable runs a template.
type Tool int

const (
	// ToolClient is the svn client.
	ToolClient Tool = iota
	// ToolAdmin is svnadmin.
	ToolAdmin
)

// unbounded marks a template accepting any number of trailing arguments.
const unbounded = -1

type templateSpec struct {
	name string
	tool Tool
	// fixed argv words placed before the caller's arguments
	prefix  []string
	minArgs int
	maxArgs int
	// quiet templates print nothing on success
	quiet bool
}

//nolint:gochecknoglobals // static command table
var templateSpecs = map[Template]templateSpec{
	TemplateVersion:          {name: "version", tool: ToolClient, prefix: []string{"--version", "--quiet"}},
	TemplateVersionFull:      {name: "version-full", tool: ToolClient, prefix: []string{"--version"}},
	TemplateInfo:             {name: "info", tool: ToolClient, prefix: []string{"info"}, maxArgs: 1},
	TemplateStatusVerbose:    {name: "status-verbose", tool: ToolClient, prefix: []string{"status", "-v"}, maxArgs: 1},
	TemplateStatus:           {name: "status", tool: ToolClient, prefix: []string{"status"}, maxArgs: 1, quiet: true},
	TemplateAdminVersion:     {name: "admin-version", tool: ToolAdmin, prefix: []string{"--version", "--quiet"}},
	TemplateAdminCreate:      {name: "admin-create", tool: ToolAdmin, prefix: []string{"create"}, minArgs: 1, maxArgs: 1, quiet: true},
	TemplateCommit:           {name: "commit", tool: ToolClient, prefix: []string{"commit", "-m"}, minArgs: 2, maxArgs: unbounded},
	TemplateAdd:              {name: "add", tool: ToolClient, prefix: []string{"add", "--parents"}, minArgs: 1, maxArgs: 1},
	TemplateUpdate:           {name: "update", tool: ToolClient, prefix: []string{"update"}, maxArgs: 1},
	TemplateUpdateToRevision: {name: "update-to-revision", tool: ToolClient, prefix: []string{"update", "-r"}, minArgs: 2, maxArgs: 2},
	TemplateRevert:           {name: "revert", tool: ToolClient, prefix: []string{"revert"}, minArgs: 1, maxArgs: 1},
	TemplateMkdir:            {name: "mkdir", tool: ToolClient, prefix: []string{"mkdir", "-m"}, minArgs: 4, maxArgs: 4},
	TemplateCheckout:         {name: "checkout", tool: ToolClient, prefix: []string{"checkout"}, minArgs: 2, maxArgs: 2},
	TemplateDiff:             {name: "diff", tool: ToolClient, prefix: []string{"diff"}, minArgs: 1, maxArgs: 1, quiet: true},
}

// String returns the template's short name, used in logs and error text.
func (t Template) String() string {
	if s, ok := templateSpecs[t]; ok {
		return s.name
	}
	return fmt.Sprintf("template(%d)", int(t))
}

// Tool reports which executable runs the template.
func (t Template) Tool() Tool {
	return templateSpecs[t].tool
}

// Quiet reports whether the command legitimately prints nothing on success,
// such as svnadmin create or status over a clean working copy.
func (t Template) Quiet() bool {
	return templateSpecs[t].quiet
}

// Argv validates the argument count and returns the argv tail (everything
// after the program name) in the template's fixed order.
func (t Template) Argv(args []string) ([]string, error) {
	spec, ok := templateSpecs[t]
	if !ok {
		return nil, fmt.Errorf("%w: %d", svnerrors.ErrUnknownTemplate, int(t))
	}
	if len(args) < spec.minArgs || (spec.maxArgs != unbounded && len(args) > spec.maxArgs) {
		return nil, fmt.Errorf("%w: %s takes %s, got %d",
			svnerrors.ErrInvalidTemplateArgs, spec.name, spec.arity(), len(args))
	}
	for _, a := range args {
		if a == "" {
			return nil, fmt.Errorf("%w: %s: empty argument", svnerrors.ErrInvalidTemplateArgs, spec.name)
		}
	}

	argv := make([]string, 0, len(spec.prefix)+len(args))
	argv = append(argv, spec.prefix...)
	return append(argv, args...), nil
}

func (s templateSpec) arity() string {
	switch {
	case s.maxArgs == unbounded:
		return fmt.Sprintf("at least %d arguments", s.minArgs)
	case s.minArgs == s.maxArgs:
		return fmt.Sprintf("%d arguments", s.minArgs)
	default:
		return fmt.Sprintf("%d to %d arguments", s.minArgs, s.maxArgs)
	}
}
