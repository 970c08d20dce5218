package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/svnop/internal/constants"
	"github.com/mrz1836/svnop/internal/errors"
)

func TestValidate_Defaults(t *testing.T) {
	require.NoError(t, Validate(DefaultConfig()))
}

func TestValidate_Nil(t *testing.T) {
	require.ErrorIs(t, Validate(nil), errors.ErrConfigNil)
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty program", func(c *Config) { c.SVN.Program = " " }, errors.ErrConfigInvalidSVN},
		{"empty admin program", func(c *Config) { c.SVN.AdminProgram = "" }, errors.ErrConfigInvalidSVN},
		{"timeout too short", func(c *Config) { c.SVN.Timeout = 100 * time.Millisecond }, errors.ErrConfigInvalidSVN},
		{"timeout too long", func(c *Config) { c.SVN.Timeout = 2 * time.Hour }, errors.ErrConfigInvalidSVN},
		{"bad min version", func(c *Config) { c.SVN.MinVersion = "1.7" }, errors.ErrConfigInvalidSVN},
		{"empty home", func(c *Config) { c.Repository.HomeDir = "" }, errors.ErrConfigInvalidRepository},
		{"unknown naming", func(c *Config) { c.Repository.Naming = "random" }, errors.ErrConfigInvalidRepository},
		{"fixed without name", func(c *Config) { c.Repository.Naming = constants.NamingFixed }, errors.ErrConfigInvalidRepository},
		{"name with separator", func(c *Config) { c.Repository.Name = "a/b" }, errors.ErrConfigInvalidRepository},
		{"name dot dot", func(c *Config) { c.Repository.Name = ".." }, errors.ErrConfigInvalidRepository},
		{"short layout", func(c *Config) { c.Repository.Layout = []string{"trunk"} }, errors.ErrConfigInvalidRepository},
		{"duplicate layout", func(c *Config) { c.Repository.Layout = []string{"a", "a", "b"} }, errors.ErrConfigInvalidRepository},
		{"nested layout", func(c *Config) { c.Repository.Layout = []string{"a/b", "c", "d"} }, errors.ErrConfigInvalidRepository},
		{"empty commit message", func(c *Config) { c.Messages.Commit = "" }, errors.ErrConfigInvalidMessages},
		{"bad placeholder", func(c *Config) { c.Messages.Commit = "Commit %d" }, errors.ErrConfigInvalidMessages},
		{"empty import message", func(c *Config) { c.Messages.Import = "\t" }, errors.ErrConfigInvalidMessages},
		{"journal without path", func(c *Config) { c.Journal.Path = "" }, errors.ErrConfigInvalidJournal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			require.ErrorIs(t, Validate(cfg), tc.want)
		})
	}
}

func TestValidate_FixedNaming(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Repository.Naming = constants.NamingFixed
	cfg.Repository.Name = "notes"
	require.NoError(t, Validate(cfg))
}

func TestValidate_DisabledJournalNeedsNoPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Journal.Enabled = false
	cfg.Journal.Path = ""
	assert.NoError(t, Validate(cfg))
}
