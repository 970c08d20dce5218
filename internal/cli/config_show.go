package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/svnop/internal/config"
	"github.com/mrz1836/svnop/internal/logging"
	"github.com/mrz1836/svnop/internal/tui"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault ConfigSource = "default"
	// SourceGlobal indicates the value came from global config.
	SourceGlobal ConfigSource = "global"
	// SourceProject indicates the value came from project config.
	SourceProject ConfigSource = "project"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
)

// ConfigValueWithSource represents a configuration value with its source.
type ConfigValueWithSource struct {
	Key    string       `json:"key" yaml:"key"`
	Value  any          `json:"value" yaml:"value"`
	Source ConfigSource `json:"source" yaml:"source"`
}

// configValues maps dotted keys ("svn.timeout") to values.
type configValues map[string]any

func addConfigCommand(root *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect svnop configuration",
	}

	var sources bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective svnop configuration as YAML.

With --sources every value is annotated with where it comes from:
  - default: Built-in default value
  - global: From ~/.svnop/config.yaml
  - project: From .svnop/config.yaml
  - env: From an SVNOP_* environment variable

Examples:
  svnop config show
  svnop config show --sources
  svnop config show --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConfigShow(cmd.Context(), cmd.OutOrStdout(), sources)
		},
	}
	show.Flags().BoolVar(&sources, "sources", false, "annotate each value with its source")

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConfigPath(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(show, path)
	root.AddCommand(cmd)
}

func (a *app) runConfigShow(ctx context.Context, w io.Writer, sources bool) error {
	out := a.output(w)

	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return fail(out, err)
	}

	effective, err := flattenConfig(cfg)
	if err != nil {
		return fail(out, err)
	}

	if sources {
		annotated := annotate(effective, loadGlobalConfigOnly(), loadConfigFile(config.ProjectConfigPath()))
		if a.flags.Output == OutputJSON {
			return out.JSON(annotated)
		}
		printAnnotated(w, annotated)
		return nil
	}

	if a.flags.Output == OutputJSON {
		tree, err := configTree(cfg)
		if err != nil {
			return fail(out, err)
		}
		return out.JSON(tree)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fail(out, fmt.Errorf("failed to encode configuration: %w", err))
	}
	_, err = w.Write(data)
	return err
}

func (a *app) runConfigPath(w io.Writer) error {
	out := a.output(w)
	global, err := config.GlobalConfigPath()
	if err != nil {
		return fail(out, err)
	}
	logPath, err := LogFilePath()
	if err != nil {
		return fail(out, err)
	}

	paths := map[string]string{
		"global":  global,
		"project": config.ProjectConfigPath(),
		"log":     logPath,
	}
	if a.flags.Output == OutputJSON {
		return out.JSON(paths)
	}
	for _, key := range []string{"global", "project", "log"} {
		out.Info(fmt.Sprintf("%-8s %s", key+":", paths[key]))
	}
	return nil
}

// configTree renders cfg through its yaml tags into nested maps, so JSON
// output uses the same key names as the config files.
func configTree(cfg *config.Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return parseTree(data)
}

func parseTree(data []byte) (map[string]any, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return tree, nil
}

// flattenConfig renders cfg into dotted keys.
func flattenConfig(cfg *config.Config) (configValues, error) {
	tree, err := configTree(cfg)
	if err != nil {
		return nil, err
	}
	values := make(configValues)
	flatten("", tree, values)
	return values, nil
}

// loadGlobalConfigOnly loads only the global config for source comparison.
func loadGlobalConfigOnly() configValues {
	path, err := config.GlobalConfigPath()
	if err != nil {
		return nil
	}
	return loadConfigFile(path)
}

// loadConfigFile loads a config file into dotted keys. A missing or
// unreadable file yields nil.
func loadConfigFile(path string) configValues {
	data, err := os.ReadFile(path) //nolint:gosec // Config file path
	if err != nil {
		return nil
	}
	values, err := parseConfigYAML(data)
	if err != nil {
		return nil
	}
	return values
}

func parseConfigYAML(data []byte) (configValues, error) {
	tree, err := parseTree(data)
	if err != nil {
		return nil, err
	}
	values := make(configValues)
	flatten("", tree, values)
	return values, nil
}

func flatten(prefix string, tree map[string]any, into configValues) {
	for key, value := range tree {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flatten(full, nested, into)
			continue
		}
		into[full] = value
	}
}

// annotate pairs every effective value with the layer it came from, sorted by key.
func annotate(effective, globalCfg, projectCfg configValues) []ConfigValueWithSource {
	keys := make([]string, 0, len(effective))
	for key := range effective {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	annotated := make([]ConfigValueWithSource, 0, len(keys))
	for _, key := range keys {
		annotated = append(annotated, determineSource(key, effective[key], globalCfg, projectCfg))
	}
	return annotated
}

// determineSource determines where a configuration value came from.
func determineSource(key string, value any, globalCfg, projectCfg configValues) ConfigValueWithSource {
	vs := ConfigValueWithSource{Key: key, Value: value, Source: SourceDefault}

	envKey := "SVNOP_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	switch {
	case os.Getenv(envKey) != "":
		vs.Source = SourceEnv
	case hasKey(projectCfg, key):
		vs.Source = SourceProject
	case hasKey(globalCfg, key):
		vs.Source = SourceGlobal
	}
	return vs
}

func hasKey(values configValues, key string) bool {
	_, ok := values[key]
	return ok
}

// configShowStyles contains styling for annotated output.
type configShowStyles struct {
	key     lipgloss.Style
	value   lipgloss.Style
	sources map[ConfigSource]lipgloss.Style
}

func newConfigShowStyles() *configShowStyles {
	tui.CheckNoColor()
	return &configShowStyles{
		key:   lipgloss.NewStyle().Bold(true),
		value: lipgloss.NewStyle(),
		sources: map[ConfigSource]lipgloss.Style{
			SourceDefault: lipgloss.NewStyle().Foreground(tui.ColorMuted),
			SourceGlobal:  lipgloss.NewStyle().Foreground(tui.ColorPrimary),
			SourceProject: lipgloss.NewStyle().Foreground(tui.ColorSuccess),
			SourceEnv:     lipgloss.NewStyle().Foreground(tui.ColorWarning),
		},
	}
}

func printAnnotated(w io.Writer, annotated []ConfigValueWithSource) {
	styles := newConfigShowStyles()
	for _, vs := range annotated {
		_, _ = fmt.Fprintf(w, "%s: %s  %s\n",
			styles.key.Render(vs.Key),
			styles.value.Render(formatConfigValue(vs.Key, vs.Value)),
			styles.sources[vs.Source].Render("# "+string(vs.Source)))
	}
}

// formatConfigValue converts a configuration value to a displayable string.
func formatConfigValue(key string, value any) string {
	switch v := value.(type) {
	case nil:
		return "(not set)"
	case string:
		if v == "" {
			return "(not set)"
		}
		return logging.SafeValue(key, v)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(v)
	}
}
