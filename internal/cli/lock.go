package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mrz1836/svnop/internal/config"
	"github.com/mrz1836/svnop/internal/constants"
	"github.com/mrz1836/svnop/internal/flock"
)

// lockDirectory takes the operation lock for the directory holding the
// target file.
func lockDirectory(ctx context.Context, dir string) (*flock.Lock, error) {
	path, err := operationLockPath(dir)
	if err != nil {
		return nil, err
	}
	return flock.Acquire(ctx, path, constants.LockTimeout, constants.LockRetryInterval)
}

// operationLockPath maps a directory to a stable lock file under
// ~/.svnop/locks. The name is a name-based UUID of the absolute path.
func operationLockPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	home, err := config.GlobalConfigDir()
	if err != nil {
		return "", err
	}
	name := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(abs))).String()
	return filepath.Join(home, constants.LocksDir, name+".lock"), nil
}
