// This file implements the capability probe for the Subversion tools.
package config

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/svnop/internal/constants"
	"github.com/mrz1836/svnop/internal/ctxutil"
	"github.com/mrz1836/svnop/internal/status"
	"github.com/mrz1836/svnop/internal/svn"
)

// ToolStatus represents the installation status of an external tool.
//
//nolint:recvcheck // UnmarshalJSON requires pointer receiver per json.Unmarshaler interface
type ToolStatus int

const (
	// ToolStatusMissing indicates the tool is not installed.
	ToolStatusMissing ToolStatus = iota

	// ToolStatusInstalled indicates the tool is installed and meets version requirements.
	ToolStatusInstalled

	// ToolStatusOutdated indicates the tool is installed but below the minimum version.
	ToolStatusOutdated
)

// maxVersionSegments is the number of segments in a semantic version (major.minor.patch).
const maxVersionSegments = 3

// String returns a human-readable representation of the tool status.
func (s ToolStatus) String() string {
	switch s {
	case ToolStatusInstalled:
		return "installed"
	case ToolStatusMissing:
		return "missing"
	case ToolStatusOutdated:
		return "outdated"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for human-readable JSON output.
func (s ToolStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for parsing JSON status strings.
func (s *ToolStatus) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(data), `"`) {
	case "installed":
		*s = ToolStatusInstalled
	case "outdated":
		*s = ToolStatusOutdated
	default:
		*s = ToolStatusMissing
	}
	return nil
}

// Tool is the detection result for one executable.
type Tool struct {
	// Name is the tool identifier ("svn" or "svnadmin").
	Name string `json:"name"`

	// Program is the configured executable.
	Program string `json:"program"`

	// Required indicates if svnop cannot work without the tool.
	Required bool `json:"required"`

	// MinVersion is the minimum accepted version (semver format).
	MinVersion string `json:"min_version"`

	// CurrentVersion is the detected installed version.
	CurrentVersion string `json:"current_version"`

	// Status is the current installation status.
	Status ToolStatus `json:"status"`

	// InstallHint provides installation instructions for missing tools.
	InstallHint string `json:"install_hint"`
}

// ToolDetectionResult holds the results of detecting all tools.
type ToolDetectionResult struct {
	// Tools contains the detection result for each tool, svn first.
	Tools []Tool `json:"tools"`

	// RAModules lists the repository access modules reported by svn.
	RAModules []string `json:"ra_modules"`

	// HasMissingRequired indicates if any required tools are missing or outdated.
	HasMissingRequired bool `json:"has_missing_required"`
}

// MissingRequiredTools returns the required tools that are missing or outdated.
func (r *ToolDetectionResult) MissingRequiredTools() []Tool {
	var missing []Tool
	for _, tool := range r.Tools {
		if tool.Required && tool.Status != ToolStatusInstalled {
			missing = append(missing, tool)
		}
	}
	return missing
}

// Tool returns the result for the named tool.
func (r *ToolDetectionResult) Tool(name string) (Tool, bool) {
	i := slices.IndexFunc(r.Tools, func(t Tool) bool { return t.Name == name })
	if i < 0 {
		return Tool{}, false
	}
	return r.Tools[i], true
}

// ToolDetector detects the installation status of the Subversion tools.
type ToolDetector struct {
	exec svn.Executor
	cfg  SVNConfig
}

// NewToolDetector creates a detector that runs version queries through exec.
func NewToolDetector(exec svn.Executor, cfg SVNConfig) *ToolDetector {
	return &ToolDetector{exec: exec, cfg: cfg}
}

type toolConfig struct {
	name        string
	program     string
	template    svn.Template
	minVersion  string
	required    bool
	installHint string
}

func (d *ToolDetector) toolConfigs() []toolConfig {
	return []toolConfig{
		{
			name:        constants.ToolSVN,
			program:     d.cfg.Program,
			template:    svn.TemplateVersion,
			minVersion:  d.cfg.MinVersion,
			required:    true,
			installHint: "Install Subversion: brew install subversion / apt install subversion",
		},
		{
			name:        constants.ToolSVNAdmin,
			program:     d.cfg.AdminProgram,
			template:    svn.TemplateAdminVersion,
			minVersion:  d.cfg.MinVersion,
			required:    false, // only create-and-import needs it
			installHint: "svnadmin ships with the Subversion server tools",
		},
	}
}

// Detect probes every tool concurrently and lists the RA modules of svn.
// A missing or outdated tool is reported in the result, not as an error;
// errors are reserved for cancellation.
func (d *ToolDetector) Detect(ctx context.Context) (*ToolDetectionResult, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	detectCtx, cancel := context.WithTimeout(ctx, constants.ToolDetectionTimeout)
	defer cancel()

	configs := d.toolConfigs()
	result := &ToolDetectionResult{Tools: make([]Tool, len(configs))}
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(detectCtx)
	for i, cfg := range configs {
		g.Go(func() error {
			tool := d.detectTool(gCtx, cfg)
			var modules []string
			if cfg.template == svn.TemplateVersion && tool.Status != ToolStatusMissing {
				modules = d.detectRAModules(gCtx)
			}

			mu.Lock()
			defer mu.Unlock()
			result.Tools[i] = tool
			if modules != nil {
				result.RAModules = modules
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to detect tools: %w", err)
	}
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	result.HasMissingRequired = len(result.MissingRequiredTools()) > 0
	return result, nil
}

func (d *ToolDetector) detectTool(ctx context.Context, cfg toolConfig) Tool {
	tool := Tool{
		Name:        cfg.name,
		Program:     cfg.program,
		Required:    cfg.required,
		MinVersion:  cfg.minVersion,
		InstallHint: cfg.installHint,
		Status:      ToolStatusMissing,
	}

	res, err := d.exec.Run(ctx, cfg.template, nil, "")
	if err != nil {
		return tool
	}
	c := svn.Classify(res)
	if c.Outcome != svn.OutcomeSuccess {
		return tool
	}

	version, err := status.ParseVersion(c.Payload)
	if err != nil {
		tool.CurrentVersion = "unknown"
		tool.Status = ToolStatusInstalled
		return tool
	}
	tool.CurrentVersion = version

	if cfg.minVersion != "" && CompareVersions(version, cfg.minVersion) < 0 {
		tool.Status = ToolStatusOutdated
	} else {
		tool.Status = ToolStatusInstalled
	}
	return tool
}

func (d *ToolDetector) detectRAModules(ctx context.Context) []string {
	res, err := d.exec.Run(ctx, svn.TemplateVersionFull, nil, "")
	if err != nil {
		return []string{}
	}
	return status.ParseRAModules(res.Stdout)
}

// CompareVersions compares two semantic versions.
// Returns -1 if current < required, 0 if equal, 1 if current > required.
func CompareVersions(current, required string) int {
	currentParts := parseVersionParts(strings.TrimPrefix(current, "v"))
	requiredParts := parseVersionParts(strings.TrimPrefix(required, "v"))

	for i := 0; i < maxVersionSegments; i++ {
		if currentParts[i] < requiredParts[i] {
			return -1
		}
		if currentParts[i] > requiredParts[i] {
			return 1
		}
	}
	return 0
}

// parseVersionParts splits a version into numeric parts, ignoring any
// non-numeric suffix of a segment (such as "1.14.2-dev").
func parseVersionParts(version string) [maxVersionSegments]int {
	var parts [maxVersionSegments]int
	segments := strings.Split(version, ".")

	for i := 0; i < len(segments) && i < maxVersionSegments; i++ {
		numStr := segments[i]
		for j, c := range numStr {
			if c < '0' || c > '9' {
				numStr = numStr[:j]
				break
			}
		}
		if numStr != "" {
			parts[i], _ = strconv.Atoi(numStr)
		}
	}
	return parts
}

// FormatMissingToolsError renders missing tools with install hints.
func FormatMissingToolsError(missing []Tool) string {
	if len(missing) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Missing required tools:\n\n")
	for _, tool := range missing {
		state := "missing"
		if tool.Status == ToolStatusOutdated {
			state = fmt.Sprintf("outdated (have %s, need %s)", tool.CurrentVersion, tool.MinVersion)
		}
		fmt.Fprintf(&sb, "  • %s (%s): %s\n", tool.Name, tool.Program, state)
		fmt.Fprintf(&sb, "    Install: %s\n\n", tool.InstallHint)
	}
	return sb.String()
}
