package status

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svnerrors "github.com/mrz1836/svnop/internal/errors"
)

// Captured from svn 1.14.2 with LC_MESSAGES=C.
const infoFile = `Path: notes/todo.txt
Name: todo.txt
Working Copy Root Path: /home/u/projects/notes
URL: file:///home/u/.svnrepos/notes/trunk/todo.txt
Relative URL: ^/trunk/todo.txt
Repository Root: file:///home/u/.svnrepos/notes
Repository UUID: 9f1e6c2a-6d8e-4d5a-9b1c-1c2d3e4f5a6b
Revision: 12
Node Kind: file
Schedule: normal
Last Changed Author: u
Last Changed Rev: 11
Last Changed Date: 2026-01-02 10:00:00 +0100 (Fri, 02 Jan 2026)
Text Last Updated: 2026-01-02 10:00:01 +0100 (Fri, 02 Jan 2026)
Checksum: 3b18e512dba79e4c8300dd08aeb37f8e728b8dad
`

const infoWindows = "Path: C:\\wc\\a.txt\r\n" +
	"Working Copy Root Path: C:\\wc\r\n" +
	"Revision: 3\r\n"

const versionFull = `svn, version 1.14.2 (r1899510)
   compiled Mar 14 2024, 09:24:16 on x86_64-pc-linux-gnu

Copyright (C) 2022 The Apache Software Foundation.

The following repository access (RA) modules are available:

* ra_svn : Module for accessing a repository using the svn network protocol.
  - with Cyrus SASL authentication
  - handles 'svn' scheme
* ra_local : Module for accessing a repository on local disk.
  - handles 'file' scheme
* ra_serf : Module for accessing a repository via WebDAV protocol using serf.
  - using serf 1.3.9 (compiled with 1.3.9)
  - handles 'http' scheme
  - handles 'https' scheme
`

func TestParseFirstCode(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   Code
	}{
		{"unmodified verbose line", "                12       11 u            /wc/todo.txt\n", Unmodified},
		{"modified", "M               12       11 u            /wc/todo.txt\n", Modified},
		{"added", "A                -       ?   ?           /wc/new.txt\n", Added},
		{"untracked", "?                                        /wc/scratch.txt\n", Untracked},
		{"leading blank line", "\nM               12       11 u            /wc/todo.txt\n", Modified},
		{"conflicted", "C               12       11 u            /wc/todo.txt\n", Conflicted},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFirstCode(tc.output)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFirstCode_Errors(t *testing.T) {
	_, err := ParseFirstCode("")
	require.ErrorIs(t, err, svnerrors.ErrUnknownStatusCode)

	_, err = ParseFirstCode("Z   weird\n")
	require.ErrorIs(t, err, svnerrors.ErrUnknownStatusCode)
}

func TestParseRevision(t *testing.T) {
	assert.Equal(t, 12, ParseRevision(infoFile))
	assert.Equal(t, 3, ParseRevision(infoWindows))
	assert.Equal(t, 0, ParseRevision("Path: x\nSchedule: add\n"))
	assert.Equal(t, 0, ParseRevision(""))
	// "Last Changed Rev" must not be mistaken for the revision.
	assert.Equal(t, 0, ParseRevision("Last Changed Rev: 11\n"))
}

func TestParseWorkingCopyRoot(t *testing.T) {
	root, err := ParseWorkingCopyRoot(infoFile)
	require.NoError(t, err)
	assert.Equal(t, "/home/u/projects/notes", root)

	root, err = ParseWorkingCopyRoot(infoWindows)
	require.NoError(t, err)
	assert.Equal(t, `C:\wc`, root)

	_, err = ParseWorkingCopyRoot("Path: x\nRevision: 1\n")
	require.ErrorIs(t, err, svnerrors.ErrLabelNotFound)
}

func TestParseWorkingCopyRoot_LabelNotPosition(t *testing.T) {
	// Extra lines before the label must not matter.
	info := "Note: something new\nPath: a\nName: a\nWorking Copy Root Path: /srv/wc\n"
	root, err := ParseWorkingCopyRoot(info)
	require.NoError(t, err)
	assert.Equal(t, "/srv/wc", root)
}

func TestParseStatusLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		code Code
		path string
	}{
		{"column layout", "A       /wc/a/b.txt", Added, "/wc/a/b.txt"},
		{"column layout with flags", "M  L  + /wc/locked.txt", Modified, "/wc/locked.txt"},
		{"path with spaces", "?       /wc/my notes.txt", Untracked, "/wc/my notes.txt"},
		{"short form", "A /r/a", Added, "/r/a"},
		{"short form nested", "A /r/a/b", Added, "/r/a/b"},
		{"crlf", "M       /wc/x.txt\r", Modified, "/wc/x.txt"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, path, err := ParseStatusLine(tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.path, path)
		})
	}
}

func TestParseStatusLine_Errors(t *testing.T) {
	for _, line := range []string{"", "A", "Q       /wc/a"} {
		_, _, err := ParseStatusLine(line)
		require.ErrorIs(t, err, svnerrors.ErrUnknownStatusCode, "line %q", line)
	}
}

func TestParseEntries(t *testing.T) {
	listing := "A       /wc/a\n" +
		"A       /wc/a/b\n" +
		"A       /wc/a/b/c.txt\n" +
		"M       /wc/readme.txt\n" +
		"C       /wc/conflict.txt\n" +
		"      >   local edit, incoming delete upon update\n" +
		"X       /wc/vendor\n" +
		"\n" +
		"Performing status on external item at '/wc/vendor':\n" +
		"?       /wc/vendor/tmp.log\n"

	entries, err := ParseEntries(listing)
	require.NoError(t, err)
	require.Len(t, entries, 7)
	assert.Equal(t, Entry{Code: Added, Path: "/wc/a"}, entries[0])
	assert.Equal(t, Entry{Code: ExternalUnversioned, Path: "/wc/vendor"}, entries[5])
	assert.Equal(t, Entry{Code: Untracked, Path: "/wc/vendor/tmp.log"}, entries[6])
}

func TestParseEntries_UnknownCode(t *testing.T) {
	_, err := ParseEntries("A       /wc/a\nZ       /wc/b\n")
	require.ErrorIs(t, err, svnerrors.ErrUnknownStatusCode)
}

func TestAddedPaths(t *testing.T) {
	added, err := AddedPaths("A /r/a\nA /r/a/b\nM /r/x.txt\n")
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"/r/a": {}, "/r/a/b": {}}, added)

	empty, err := AddedPaths("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("1.14.2\n")
	require.NoError(t, err)
	assert.Equal(t, "1.14.2", v)

	v, err = ParseVersion(versionFull)
	require.NoError(t, err)
	assert.Equal(t, "1.14.2", v)

	_, err = ParseVersion("garbage")
	require.ErrorIs(t, err, svnerrors.ErrLabelNotFound)
}

func TestParseRAModules(t *testing.T) {
	assert.Equal(t, []string{"ra_svn", "ra_local", "ra_serf"}, ParseRAModules(versionFull))
	assert.Empty(t, ParseRAModules("1.14.2\n"))
}

func TestParseCommittedRevision(t *testing.T) {
	out := "Adding         a\nAdding         a/b\nAdding         a/b/c.txt\n" +
		"Transmitting file data .done\nCommitting transaction...\nCommitted revision 7.\n"

	assert.Equal(t, 7, ParseCommittedRevision(out))
	assert.Equal(t, 7, ParseCommittedRevision(strings.ReplaceAll(out, "\n", "\r\n")))
	assert.Equal(t, 0, ParseCommittedRevision(""))
}
