package config

import (
	"context"
	"fmt"
	"slices"

	"github.com/mrz1836/svnop/internal/constants"
	"github.com/mrz1836/svnop/internal/errors"
)

// Availability is the typed outcome of probing one tool.
type Availability struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Available reports a usable tool at the given version.
func Available(version string) Availability {
	return Availability{Available: true, Version: version}
}

// Unavailable reports an unusable tool and why.
func Unavailable(reason string) Availability {
	return Availability{Reason: reason}
}

// Environment is the immutable set of capabilities established once at
// startup and passed to the orchestrator.
type Environment struct {
	SVN     Availability `json:"svn"`
	Admin   Availability `json:"svnadmin"`
	RALocal bool         `json:"ra_local"`
	RASvn   bool         `json:"ra_svn"`
}

// CanCreateRepository reports whether create-and-import can run, and why not.
func (e Environment) CanCreateRepository() error {
	if !e.Admin.Available {
		return fmt.Errorf("%w: svnadmin: %s", errors.ErrEnvironment, e.Admin.Reason)
	}
	if !e.RALocal {
		return fmt.Errorf("%w: svn has no %s module for file:// repositories",
			errors.ErrEnvironment, constants.RAModuleLocal)
	}
	return nil
}

// EnvironmentFromDetection converts a detection result into an Environment.
func EnvironmentFromDetection(r *ToolDetectionResult) Environment {
	return Environment{
		SVN:     availabilityOf(r, constants.ToolSVN),
		Admin:   availabilityOf(r, constants.ToolSVNAdmin),
		RALocal: slices.Contains(r.RAModules, constants.RAModuleLocal),
		RASvn:   slices.Contains(r.RAModules, constants.RAModuleSvn),
	}
}

func availabilityOf(r *ToolDetectionResult, name string) Availability {
	tool, ok := r.Tool(name)
	if !ok {
		return Unavailable("not probed")
	}
	switch tool.Status {
	case ToolStatusInstalled:
		return Available(tool.CurrentVersion)
	case ToolStatusOutdated:
		return Unavailable(fmt.Sprintf("version %s is older than %s", tool.CurrentVersion, tool.MinVersion))
	case ToolStatusMissing:
		return Unavailable(fmt.Sprintf("%s not found", tool.Program))
	default:
		return Unavailable("unknown status")
	}
}

// Probe detects the tools once and returns the Environment. A missing or
// outdated svn client is an ErrEnvironment; svnadmin is optional.
func Probe(ctx context.Context, detector *ToolDetector) (Environment, *ToolDetectionResult, error) {
	result, err := detector.Detect(ctx)
	if err != nil {
		return Environment{}, nil, err
	}

	env := EnvironmentFromDetection(result)
	if !env.SVN.Available {
		return env, result, fmt.Errorf("%w: svn: %s", errors.ErrEnvironment, env.SVN.Reason)
	}
	return env, result, nil
}
