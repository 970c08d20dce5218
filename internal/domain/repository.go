package domain

import (
	"path/filepath"
	"strings"
)

// RepositoryLocation is the target of a create-and-import operation.
type RepositoryLocation struct {
	// RootDirectory holds all local repositories.
	RootDirectory string `json:"root_directory"`

	// Name is the repository directory below RootDirectory.
	Name string `json:"name"`
}

// Path returns the repository's directory on disk.
func (l RepositoryLocation) Path() string {
	return filepath.Join(l.RootDirectory, l.Name)
}

// URL returns the file:// URL of the repository.
func (l RepositoryLocation) URL() string {
	return FileURL(l.Path())
}

// FileURL converts an absolute local path into a file:// URL.
// Windows drive paths gain a leading slash (file:///C:/repos/x).
func FileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return "file://" + p
}

// WorkingCopy identifies a checked-out directory tree.
type WorkingCopy struct {
	// RootPath is the nearest ancestor recognized as a working-copy root.
	RootPath string `json:"root_path"`

	// Revision is the revision of the queried path; 0 when it has never
	// been committed.
	Revision int `json:"revision"`
}
