// Package constants provides centralized constant values used throughout svnop.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by svnop for organizing data.
const (
	// SvnopHome is the hidden directory name where svnop stores its config, logs
	// and journal. It is created in the user's home directory.
	SvnopHome = ".svnop"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// LocksDir holds the per-directory operation lock files.
	LocksDir = "locks"

	// DefaultRepositoryHome is the directory, relative to the user's home,
	// that receives repositories created by create-and-import.
	DefaultRepositoryHome = ".svnrepos"
)

// Timeout configurations for subprocess invocations.
const (
	// DefaultCommandTimeout bounds a single svn or svnadmin invocation.
	// The tool may block on network access or working-copy locks.
	DefaultCommandTimeout = 2 * time.Minute

	// MinCommandTimeout is the smallest accepted svn.timeout value.
	MinCommandTimeout = time.Second

	// MaxCommandTimeout is the largest accepted svn.timeout value.
	MaxCommandTimeout = time.Hour
)

// Operation lock settings.
const (
	// LockTimeout is how long a mutating operation waits for another svnop
	// process working in the same directory.
	LockTimeout = 10 * time.Second

	// LockRetryInterval is the pause between lock attempts.
	LockRetryInterval = 50 * time.Millisecond
)

// Repository naming policies for create-and-import.
const (
	// NamingBasename names a new repository after the working directory.
	NamingBasename = "basename"

	// NamingFixed uses the configured repository.name verbatim.
	NamingFixed = "fixed"
)

// Default messages passed to svn for commits issued by svnop.
const (
	// DefaultCommitMessage is formatted with the committed file's base name.
	DefaultCommitMessage = "Commit %s."

	// DefaultLayoutMessage is used for the mkdir that creates trunk/branches/tags.
	DefaultLayoutMessage = "Create directory structure."

	// DefaultImportMessage is used for the first commit after create-and-import.
	DefaultImportMessage = "Initial import."
)

// Repository layout directories created by create-and-import.
const (
	// LayoutTrunk is the mainline directory; the working copy checks it out.
	LayoutTrunk = "trunk"

	// LayoutBranches holds branch copies.
	LayoutBranches = "branches"

	// LayoutTags holds tag copies.
	LayoutTags = "tags"
)

// DefaultHistoryLimit is the number of journal entries `svnop history` shows.
const DefaultHistoryLimit = 20

// MaxHistoryLimit caps `svnop history --limit`.
const MaxHistoryLimit = 1000
