// Package ancestry computes the directories between a working-copy root
// and a file, and which of them still have to be committed with it.
package ancestry

import (
	"fmt"
	"path/filepath"
	"strings"

	svnerrors "github.com/mrz1836/svnop/internal/errors"
	"github.com/mrz1836/svnop/internal/status"
)

// BuildAncestorChain returns every path from just below root down to file,
// root-to-leaf. The root itself is excluded and file is always the last
// element. It fails unless file lies strictly below root.
func BuildAncestorChain(root, file string) ([]string, error) {
	root = filepath.Clean(root)
	file = filepath.Clean(file)

	rel, err := filepath.Rel(root, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s not under %s: %w", svnerrors.ErrPathOutsideRoot, file, root, err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return nil, fmt.Errorf("%w: %s not under %s", svnerrors.ErrPathOutsideRoot, file, root)
	}

	segments := strings.Split(rel, string(filepath.Separator))
	chain := make([]string, 0, len(segments))
	current := root
	for _, seg := range segments {
		current = filepath.Join(current, seg)
		chain = append(chain, current)
	}
	return chain, nil
}

// BuildCommitListWithParents returns the ancestor chain of file filtered to
// the paths listing marks as Added, keeping root-to-leaf order. The result
// is the minimal set that must be committed together for file to go in.
func BuildCommitListWithParents(file, root, listing string) ([]string, error) {
	added, err := status.AddedPaths(listing)
	if err != nil {
		return nil, err
	}
	chain, err := BuildAncestorChain(root, file)
	if err != nil {
		return nil, err
	}

	pending := make(map[string]struct{}, len(added))
	for p := range added {
		pending[filepath.Clean(p)] = struct{}{}
	}

	list := make([]string, 0, len(chain))
	for _, p := range chain {
		if _, ok := pending[p]; ok {
			list = append(list, p)
		}
	}
	return list, nil
}
