// Package flock provides cross-platform exclusive file locks.
//
// svnop takes one lock per working directory around every mutating
// operation, so two svnop processes never interleave their svn commands
// on the same files.
package flock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mrz1836/svnop/internal/errors"
)

// Lock is a held exclusive lock on a file.
type Lock struct {
	f *os.File
}

// Acquire locks path, creating it and its directory if needed. It retries
// every interval until timeout elapses or ctx is done.
func Acquire(ctx context.Context, path string, timeout, interval time.Duration) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600) //#nosec G304 -- lock path is derived from the svnop home directory
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for {
		if err := tryLock(f); err == nil {
			return &Lock{f: f}, nil
		}

		if !time.Now().Before(deadline) {
			_ = f.Close()
			return nil, fmt.Errorf("%w: %s", errors.ErrLockTimeout, path)
		}

		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
}

// Release unlocks and closes the lock file. It is safe on a nil Lock.
func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	f := l.f
	l.f = nil

	if err := unlock(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return f.Close()
}
