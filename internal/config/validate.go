package config

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mrz1836/svnop/internal/constants"
	"github.com/mrz1836/svnop/internal/errors"
)

// layoutSize is the number of top-level directories created in a new repository.
const layoutSize = 3

var semverRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - svn.program and svn.admin_program must not be empty
//   - svn.timeout must be between 1 second and 1 hour
//   - svn.min_version must be major.minor.patch
//   - repository.naming must be "basename" or "fixed"; "fixed" needs a name
//   - repository.name must be a single path segment
//   - repository.layout must hold three distinct single-segment names
//   - all messages must be non-empty
//   - journal.path must be set when the journal is enabled
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateSVNConfig(&cfg.SVN); err != nil {
		return err
	}
	if err := validateRepositoryConfig(&cfg.Repository); err != nil {
		return err
	}
	if err := validateMessagesConfig(&cfg.Messages); err != nil {
		return err
	}
	return validateJournalConfig(&cfg.Journal)
}

func validateSVNConfig(cfg *SVNConfig) error {
	if strings.TrimSpace(cfg.Program) == "" {
		return errors.Wrap(errors.ErrConfigInvalidSVN, "svn.program must not be empty")
	}
	if strings.TrimSpace(cfg.AdminProgram) == "" {
		return errors.Wrap(errors.ErrConfigInvalidSVN, "svn.admin_program must not be empty")
	}
	if cfg.Timeout < constants.MinCommandTimeout || cfg.Timeout > constants.MaxCommandTimeout {
		return errors.Wrapf(errors.ErrConfigInvalidSVN,
			"svn.timeout must be between %s and %s, got %s",
			constants.MinCommandTimeout, constants.MaxCommandTimeout, cfg.Timeout)
	}
	if !semverRe.MatchString(cfg.MinVersion) {
		return errors.Wrapf(errors.ErrConfigInvalidSVN,
			"svn.min_version must look like 1.7.0, got %q", cfg.MinVersion)
	}
	return nil
}

func validateRepositoryConfig(cfg *RepositoryConfig) error {
	if strings.TrimSpace(cfg.HomeDir) == "" {
		return errors.Wrap(errors.ErrConfigInvalidRepository, "repository.home_dir must not be empty")
	}

	switch cfg.Naming {
	case constants.NamingBasename:
	case constants.NamingFixed:
		if cfg.Name == "" {
			return errors.Wrap(errors.ErrConfigInvalidRepository,
				"repository.name is required when repository.naming is fixed")
		}
	default:
		return errors.Wrapf(errors.ErrConfigInvalidRepository,
			"repository.naming must be %q or %q, got %q",
			constants.NamingBasename, constants.NamingFixed, cfg.Naming)
	}
	if cfg.Name != "" && !singleSegment(cfg.Name) {
		return errors.Wrapf(errors.ErrConfigInvalidRepository,
			"repository.name must be a plain directory name, got %q", cfg.Name)
	}

	if len(cfg.Layout) != layoutSize {
		return errors.Wrapf(errors.ErrConfigInvalidRepository,
			"repository.layout must list %d directories, got %d", layoutSize, len(cfg.Layout))
	}
	seen := make(map[string]bool, len(cfg.Layout))
	for _, dir := range cfg.Layout {
		if !singleSegment(dir) || seen[dir] {
			return errors.Wrapf(errors.ErrConfigInvalidRepository,
				"repository.layout entries must be distinct directory names, got %q", cfg.Layout)
		}
		seen[dir] = true
	}
	return nil
}

func validateMessagesConfig(cfg *MessagesConfig) error {
	for key, msg := range map[string]string{
		"messages.commit": cfg.Commit,
		"messages.layout": cfg.Layout,
		"messages.import": cfg.Import,
	} {
		if strings.TrimSpace(msg) == "" {
			return errors.Wrapf(errors.ErrConfigInvalidMessages, "%s must not be empty", key)
		}
	}
	if strings.Count(cfg.Commit, "%") > strings.Count(cfg.Commit, "%s") {
		return errors.Wrapf(errors.ErrConfigInvalidMessages,
			"messages.commit may only use %%s as a placeholder, got %q", cfg.Commit)
	}
	return nil
}

func validateJournalConfig(cfg *JournalConfig) error {
	if cfg.Enabled && strings.TrimSpace(cfg.Path) == "" {
		return errors.Wrap(errors.ErrConfigInvalidJournal, "journal.path must be set when the journal is enabled")
	}
	return nil
}

func singleSegment(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}
