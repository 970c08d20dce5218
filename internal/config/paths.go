package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrz1836/svnop/internal/constants"
	"github.com/mrz1836/svnop/internal/errors"
)

// GlobalConfigDir returns the path to the global svnop directory,
// typically ~/.svnop. Logs and the journal live here too.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.SvnopHome), nil
}

// ProjectConfigDir returns the relative path to the project configuration directory.
func ProjectConfigDir() string {
	return constants.SvnopHome
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), constants.GlobalConfigName)
}

// ExpandHome replaces a leading "~" with the user's home directory.
// Other paths are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, path[1:]), nil
}

// RepositoryHome returns the expanded, absolute repository home directory.
func (c *Config) RepositoryHome() (string, error) {
	dir, err := ExpandHome(c.Repository.HomeDir)
	if err != nil {
		return "", err
	}
	return filepath.Abs(dir)
}

// JournalPath returns the expanded journal database path.
func (c *Config) JournalPath() (string, error) {
	return ExpandHome(c.Journal.Path)
}
