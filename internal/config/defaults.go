package config

import (
	"path/filepath"

	"github.com/mrz1836/svnop/internal/constants"
)

// DefaultConfig returns a new Config with the built-in default values.
// These defaults are the base layer that config files and environment
// variables override.
func DefaultConfig() *Config {
	return &Config{
		SVN: SVNConfig{
			Program:      constants.ToolSVN,
			AdminProgram: constants.ToolSVNAdmin,
			Timeout:      constants.DefaultCommandTimeout,
			MinVersion:   constants.MinVersionSVN,
		},
		Repository: RepositoryConfig{
			HomeDir: filepath.Join("~", constants.DefaultRepositoryHome),
			Naming:  constants.NamingBasename,
			Layout:  DefaultLayout(),
		},
		Messages: MessagesConfig{
			Commit: constants.DefaultCommitMessage,
			Layout: constants.DefaultLayoutMessage,
			Import: constants.DefaultImportMessage,
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    filepath.Join("~", constants.SvnopHome, constants.JournalFileName),
		},
	}
}

// DefaultLayout returns the conventional trunk/branches/tags layout.
func DefaultLayout() []string {
	return []string{constants.LayoutTrunk, constants.LayoutBranches, constants.LayoutTags}
}
