// Package config provides configuration management for svnop with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. Environment variables (SVNOP_* prefix)
//  2. Project config (.svnop/config.yaml)
//  3. Global config (~/.svnop/config.yaml)
//  4. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// The package also probes the installed Subversion tools once at startup and
// hands the result to the orchestrator as an immutable Environment.
package config

import "time"

// Config is the root configuration structure for svnop.
type Config struct {
	// SVN contains settings for invoking the Subversion tools.
	SVN SVNConfig `yaml:"svn" mapstructure:"svn"`

	// Repository contains settings for create-and-import.
	Repository RepositoryConfig `yaml:"repository" mapstructure:"repository"`

	// Messages contains the log messages used for commits.
	Messages MessagesConfig `yaml:"messages" mapstructure:"messages"`

	// Journal contains settings for the local operation history.
	Journal JournalConfig `yaml:"journal" mapstructure:"journal"`
}

// SVNConfig contains settings for the svn and svnadmin executables.
type SVNConfig struct {
	// Program is the svn client executable, looked up on PATH.
	// Default: "svn"
	Program string `yaml:"program" mapstructure:"program"`

	// AdminProgram is the svnadmin executable, looked up on PATH.
	// Default: "svnadmin"
	AdminProgram string `yaml:"admin_program" mapstructure:"admin_program"`

	// Timeout bounds every single invocation.
	// Default: 2 minutes, Valid range: 1s-1h
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// MinVersion is the oldest client version accepted by the probe.
	// Default: "1.7.0" (single .svn directory at the working-copy root)
	MinVersion string `yaml:"min_version" mapstructure:"min_version"`
}

// RepositoryConfig contains settings for creating local repositories.
type RepositoryConfig struct {
	// HomeDir is the directory holding all repositories created by svnop.
	// A leading "~" expands to the user's home directory.
	// Default: "~/.svnrepos"
	HomeDir string `yaml:"home_dir" mapstructure:"home_dir"`

	// Naming selects how a new repository is named:
	// "basename" uses the file's directory name, "fixed" uses Name.
	// Default: "basename"
	Naming string `yaml:"naming" mapstructure:"naming"`

	// Name is the repository name when Naming is "fixed".
	Name string `yaml:"name" mapstructure:"name"`

	// Layout lists the top-level directories created in a new repository.
	// The first entry is checked out as the working copy.
	// Default: ["trunk", "branches", "tags"]
	Layout []string `yaml:"layout" mapstructure:"layout"`
}

// MessagesConfig contains log messages.
type MessagesConfig struct {
	// Commit is the default commit message; "%s" is replaced by the file name.
	// Default: "Commit %s."
	Commit string `yaml:"commit" mapstructure:"commit"`

	// Layout is the message for creating the repository layout.
	// Default: "Create directory structure."
	Layout string `yaml:"layout" mapstructure:"layout"`

	// Import is the message for the first commit of an imported file.
	// Default: "Initial import."
	Import string `yaml:"import" mapstructure:"import"`
}

// JournalConfig contains settings for the operation journal.
type JournalConfig struct {
	// Enabled turns recording of operation outcomes on or off.
	// Default: true
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file. A leading "~" expands to the home directory.
	// Default: "~/.svnop/journal.db"
	Path string `yaml:"path" mapstructure:"path"`
}
