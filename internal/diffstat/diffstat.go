// Package diffstat summarises unified diffs printed by `svn diff`.
package diffstat

import (
	"fmt"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"

	svnerrors "github.com/mrz1836/svnop/internal/errors"
)

// FileStat counts the changed lines of one file.
type FileStat struct {
	Path    string `json:"path"`
	Added   int    `json:"added"`
	Deleted int    `json:"deleted"`
	Hunks   int    `json:"hunks"`
}

// Summary is the per-file breakdown of a diff.
type Summary struct {
	Files []FileStat `json:"files"`
}

// Added returns the total number of added lines.
func (s Summary) Added() int {
	n := 0
	for _, f := range s.Files {
		n += f.Added
	}
	return n
}

// Deleted returns the total number of deleted lines.
func (s Summary) Deleted() int {
	n := 0
	for _, f := range s.Files {
		n += f.Deleted
	}
	return n
}

// Empty reports whether the diff touched nothing.
func (s Summary) Empty() bool {
	return len(s.Files) == 0
}

// String renders one "path | +a -d" line per file.
func (s Summary) String() string {
	if s.Empty() {
		return "no changes"
	}
	lines := make([]string, 0, len(s.Files))
	for _, f := range s.Files {
		lines = append(lines, fmt.Sprintf("%s | +%d -%d", f.Path, f.Added, f.Deleted))
	}
	return strings.Join(lines, "\n")
}

// Summarize parses diffText and counts added and deleted lines per file.
// Empty input yields an empty Summary.
func Summarize(diffText string) (Summary, error) {
	if strings.TrimSpace(diffText) == "" {
		return Summary{}, nil
	}

	fileDiffs, err := godiff.ParseMultiFileDiff([]byte(stripHeaderLabels(strings.ReplaceAll(diffText, "\r\n", "\n"))))
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", svnerrors.ErrDiffParse, err)
	}

	summary := Summary{Files: make([]FileStat, 0, len(fileDiffs))}
	for _, fd := range fileDiffs {
		if fd == nil {
			continue
		}
		// Changed counts a deleted line paired with an added one, so it
		// belongs on both sides.
		st := fd.Stat()
		summary.Files = append(summary.Files, FileStat{
			Path:    diffPath(fd),
			Added:   int(st.Added + st.Changed),
			Deleted: int(st.Deleted + st.Changed),
			Hunks:   len(fd.Hunks),
		})
	}
	return summary, nil
}

// stripHeaderLabels drops the tab-separated "(revision N)" and
// "(working copy)" labels svn appends to file header lines. go-diff expects
// a timestamp there.
func stripHeaderLabels(text string) string {
	lines := strings.Split(text, "\n")
	for i := 0; i+1 < len(lines); i++ {
		if !strings.HasPrefix(lines[i], "--- ") || !strings.HasPrefix(lines[i+1], "+++ ") {
			continue
		}
		lines[i] = cutLabel(lines[i])
		lines[i+1] = cutLabel(lines[i+1])
		i++
	}
	return strings.Join(lines, "\n")
}

func cutLabel(line string) string {
	if tab := strings.IndexByte(line, '\t'); tab >= 0 {
		return line[:tab]
	}
	return line
}

func diffPath(fd *godiff.FileDiff) string {
	name := strings.TrimSpace(fd.NewName)
	if name == "" || name == "/dev/null" {
		name = strings.TrimSpace(fd.OrigName)
	}
	return strings.Trim(name, "\"")
}
