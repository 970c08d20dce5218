package status

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mrz1836/svnop/internal/constants"
	svnerrors "github.com/mrz1836/svnop/internal/errors"
)

//nolint:gochecknoglobals // compiled once
var (
	revisionPattern  = regexp.MustCompile(`(?m)^` + constants.InfoLabelRevision + `:\s*(\d+)\s*$`)
	versionPattern   = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)`)
	raModulePattern  = regexp.MustCompile(`(?m)^\*\s+(ra_\w+)`)
	committedPattern = regexp.MustCompile(`(?m)^Committed revision (\d+)\.`)
)

// flagColumns are the characters svn may print in status columns 2 to 7.
const flagColumns = " MCLS+XKOTB*"

// ParseFirstCode reads the status code from the first line of
// `svn status -v <path>` output.
func ParseFirstCode(output string) (Code, error) {
	// A leading space is the Unmodified code, so only newlines are trimmed.
	text := strings.TrimLeft(output, "\r\n")
	if text == "" {
		return 0, fmt.Errorf("%w: empty status output", svnerrors.ErrUnknownStatusCode)
	}
	return ParseCode(text[0])
}

// ParseRevision extracts the number following "Revision:" in `svn info`
// output. It returns 0 when no such line exists.
func ParseRevision(info string) int {
	m := revisionPattern.FindStringSubmatch(normalizeNewlines(info))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// ParseCommittedRevision extracts N from the "Committed revision N." line
// svn commit prints last. It returns 0 when the line is absent.
func ParseCommittedRevision(output string) int {
	m := committedPattern.FindStringSubmatch(normalizeNewlines(output))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// ParseWorkingCopyRoot extracts the "Working Copy Root Path" value from
// `svn info` output by label.
func ParseWorkingCopyRoot(info string) (string, error) {
	if v, ok := labelValue(info, constants.InfoLabelWorkingCopyRoot); ok && v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", svnerrors.ErrLabelNotFound, constants.InfoLabelWorkingCopyRoot)
}

// labelValue returns the text after "<label>:" on the first matching line.
func labelValue(info, label string) (string, bool) {
	for _, line := range strings.Split(normalizeNewlines(info), "\n") {
		name, value, found := strings.Cut(line, ":")
		if found && strings.TrimSpace(name) == label {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

// Entry is one line of a recursive status listing.
type Entry struct {
	Code Code
	Path string
}

// ParseStatusLine splits a non-verbose status line into its code and path.
// Lines in svn's fixed seven-column layout carry the path from offset 8;
// anything shorter is read as "<code> <path>".
func ParseStatusLine(line string) (Code, string, error) {
	line = strings.TrimRight(line, "\r")
	if line == "" {
		return 0, "", fmt.Errorf("%w: empty status line", svnerrors.ErrUnknownStatusCode)
	}
	code, err := ParseCode(line[0])
	if err != nil {
		return 0, "", err
	}

	var path string
	if columnLayout(line) {
		path = line[8:]
	} else {
		path = strings.TrimSpace(line[1:])
	}
	if path == "" {
		return 0, "", fmt.Errorf("%w: status line without path: %q", svnerrors.ErrUnknownStatusCode, line)
	}
	return code, path, nil
}

func columnLayout(line string) bool {
	if len(line) < 9 || line[7] != ' ' {
		return false
	}
	for i := 1; i < 7; i++ {
		if !strings.ContainsRune(flagColumns, rune(line[i])) {
			return false
		}
	}
	return true
}

// ParseEntries parses a recursive `svn status` listing. Blank lines,
// external headers and tree-conflict detail lines are skipped.
func ParseEntries(listing string) ([]Entry, error) {
	var entries []Entry
	for _, line := range strings.Split(normalizeNewlines(listing), "\n") {
		if skipListingLine(line) {
			continue
		}
		code, path, err := ParseStatusLine(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Code: code, Path: path})
	}
	return entries, nil
}

func skipListingLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" ||
		strings.HasPrefix(trimmed, ">") ||
		strings.HasPrefix(trimmed, "Performing status on external item")
}

// AddedPaths returns the pending-add set of a listing: every path whose
// first column is A.
func AddedPaths(listing string) (map[string]struct{}, error) {
	entries, err := ParseEntries(listing)
	if err != nil {
		return nil, err
	}
	added := make(map[string]struct{})
	for _, e := range entries {
		if e.Code == Added {
			added[e.Path] = struct{}{}
		}
	}
	return added, nil
}

// ParseVersion extracts a semantic version from `--version --quiet` output.
func ParseVersion(text string) (string, error) {
	m := versionPattern.FindString(text)
	if m == "" {
		return "", fmt.Errorf("%w: no version in %q", svnerrors.ErrLabelNotFound, strings.TrimSpace(text))
	}
	return m, nil
}

// ParseRAModules lists the repository access modules from `svn --version`.
func ParseRAModules(text string) []string {
	matches := raModulePattern.FindAllStringSubmatch(normalizeNewlines(text), -1)
	modules := make([]string, 0, len(matches))
	for _, m := range matches {
		modules = append(modules, m[1])
	}
	return modules
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
