package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/svnop/internal/config"
	"github.com/mrz1836/svnop/internal/errors"
)

// doctorReport is the JSON form of `svnop doctor`.
type doctorReport struct {
	Tools       []config.Tool      `json:"tools"`
	RAModules   []string           `json:"ra_modules"`
	Environment config.Environment `json:"environment"`
	OK          bool               `json:"ok"`
}

func addDoctorCommand(root *cobra.Command, a *app) {
	root.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Check the installed svn and svnadmin tools",
		Long: `Probe svn and svnadmin, print their versions and the repository access
modules svn supports, and explain what is missing.

svnadmin and the ra_local module are only needed by create.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDoctor(cmd.Context(), cmd.OutOrStdout())
		},
	})
}

func (a *app) runDoctor(ctx context.Context, w io.Writer) error {
	out := a.output(w)

	s, probeErr := a.openSession(ctx, sessionOptions{probe: true})
	defer s.Close()
	if probeErr != nil && (s == nil || s.detection == nil) {
		return fail(out, probeErr)
	}

	if a.flags.Output == OutputJSON {
		if err := out.JSON(doctorReport{
			Tools:       s.detection.Tools,
			RAModules:   s.detection.RAModules,
			Environment: s.env,
			OK:          probeErr == nil,
		}); err != nil {
			return err
		}
	} else {
		printDoctor(out.Info, s.detection, s.env)
	}

	if probeErr != nil {
		return fmt.Errorf("%w: %w", errors.ErrOperationFailed, probeErr)
	}
	return nil
}

func printDoctor(info func(string), detection *config.ToolDetectionResult, env config.Environment) {
	for _, tool := range detection.Tools {
		switch tool.Status {
		case config.ToolStatusInstalled:
			info(fmt.Sprintf("✓ %s %s", tool.Name, tool.CurrentVersion))
		case config.ToolStatusOutdated:
			info(fmt.Sprintf("✗ %s %s (need %s)", tool.Name, tool.CurrentVersion, tool.MinVersion))
		case config.ToolStatusMissing:
			info(fmt.Sprintf("✗ %s not found (%s)", tool.Name, tool.Program))
		}
	}

	if len(detection.RAModules) > 0 {
		info("  RA modules: " + strings.Join(detection.RAModules, ", "))
	}

	if missing := detection.MissingRequiredTools(); len(missing) > 0 {
		info(strings.TrimRight(config.FormatMissingToolsError(missing), "\n"))
		return
	}
	if err := env.CanCreateRepository(); err != nil {
		info("  create is unavailable: " + err.Error())
		return
	}
	info("All tools are ready.")
}
