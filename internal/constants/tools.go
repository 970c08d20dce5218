// Package constants provides centralized constant values used throughout svnop.
// This file contains tool and diagnostic constants for the svn command line.
package constants

import "time"

// Tool detection timeout configuration.
const (
	// ToolDetectionTimeout is the maximum duration for probing all tools.
	// Detection runs in parallel but must complete within this timeout.
	ToolDetectionTimeout = 5 * time.Second
)

// Tool names used by the tool detection system and the executor.
const (
	// ToolSVN is the Subversion command line client.
	ToolSVN = "svn"

	// ToolSVNAdmin is the Subversion repository administration tool.
	ToolSVNAdmin = "svnadmin"
)

// MinVersionSVN is the oldest client whose info output carries the
// "Working Copy Root Path" label and whose errors carry numeric codes.
const MinVersionSVN = "1.7.0"

// Repository access modules reported by `svn --version`.
const (
	// RAModuleLocal serves file:// URLs.
	RAModuleLocal = "ra_local"

	// RAModuleSvn serves svn:// URLs.
	RAModuleSvn = "ra_svn"
)

// Diagnostic codes embedded in svn error and warning text.
const (
	// CodeNotWorkingCopy is reported when a path is outside any working copy.
	CodeNotWorkingCopy = "E155007"

	// CodeParentNotAdded is reported by commit when an added ancestor
	// directory of a committed path is not part of the commit.
	CodeParentNotAdded = "E200009"

	// CodeNodeNotFound is the warning for a path svn has no record of.
	CodeNodeNotFound = "W155010"
)

// Labels in `svn info` output.
const (
	// InfoLabelRevision precedes the node's working revision.
	InfoLabelRevision = "Revision"

	// InfoLabelWorkingCopyRoot precedes the working copy root path.
	InfoLabelWorkingCopyRoot = "Working Copy Root Path"
)
