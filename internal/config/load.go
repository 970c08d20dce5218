package config

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/svnop/internal/constants"
	"github.com/mrz1836/svnop/internal/errors"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "SVNOP"

// newViperInstance creates a new Viper instance with the SVNOP_ environment
// prefix, key replacer, and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence.
// Missing config files are not an error.
func Load(ctx context.Context) (*Config, error) {
	v := newViperInstance()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	cfg, err := unmarshalAndValidate(v)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("svn.program", cfg.SVN.Program).
		Dur("svn.timeout", cfg.SVN.Timeout).
		Str("repository.home_dir", cfg.Repository.HomeDir).
		Str("repository.naming", cfg.Repository.Naming).
		Bool("journal.enabled", cfg.Journal.Enabled).
		Msg("configuration loaded")

	return cfg, nil
}

// loadGlobalConfig loads ~/.svnop/config.yaml if it exists.
func loadGlobalConfig(v *viper.Viper) error {
	globalConfigPath, ok := getGlobalConfigPathIfExists()
	if !ok {
		return nil
	}

	v.SetConfigFile(globalConfigPath)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// getGlobalConfigPathIfExists returns the global config path if it exists.
func getGlobalConfigPathIfExists() (string, bool) {
	path, err := GlobalConfigPath()
	if err != nil {
		return "", false
	}
	if !fileExists(path) {
		return "", false
	}
	return path, true
}

// loadProjectConfig merges .svnop/config.yaml from the current directory if it exists.
func loadProjectConfig(v *viper.Viper) error {
	projectConfigPath := ProjectConfigPath()
	if !fileExists(projectConfigPath) {
		return nil
	}

	v.SetConfigFile(projectConfigPath)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read project config file")
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadFromPaths loads configuration from specific file paths.
// projectConfigPath takes precedence over globalConfigPath; either may be
// empty to skip that level. Missing files are skipped.
func LoadFromPaths(_ context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}

	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(v)
}

// setDefaults configures all default values on the Viper instance.
// Keys must match the mapstructure tag names exactly.
func setDefaults(v *viper.Viper) {
	v.SetDefault("svn.program", constants.ToolSVN)
	v.SetDefault("svn.admin_program", constants.ToolSVNAdmin)
	v.SetDefault("svn.timeout", constants.DefaultCommandTimeout.String())
	v.SetDefault("svn.min_version", constants.MinVersionSVN)

	v.SetDefault("repository.home_dir", filepath.Join("~", constants.DefaultRepositoryHome))
	v.SetDefault("repository.naming", constants.NamingBasename)
	v.SetDefault("repository.name", "")
	v.SetDefault("repository.layout", DefaultLayout())

	v.SetDefault("messages.commit", constants.DefaultCommitMessage)
	v.SetDefault("messages.layout", constants.DefaultLayoutMessage)
	v.SetDefault("messages.import", constants.DefaultImportMessage)

	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.path", filepath.Join("~", constants.SvnopHome, constants.JournalFileName))
}

// viperDecoderOption handles time.Duration and comma-separated list
// conversion from strings, which is how environment variables arrive.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}
