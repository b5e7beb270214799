// Package filelock serializes generation runs that target the same root.
package filelock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the lock past the timeout.
var ErrLocked = errors.New("root is locked by another dirlint process")

const retryDelay = 50 * time.Millisecond

// FileLock wraps a flock file lock for one target root.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// PathFor returns the lock file used for root. Lock files live in dir, or in
// the system temp directory when dir is empty, so the target tree is never
// touched.
func PathFor(dir, root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", root, err)
	}
	sum := sha256.Sum256([]byte(abs))
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "dirlint-"+hex.EncodeToString(sum[:8])+".lock"), nil
}

// New creates a lock for root. See PathFor for dir.
func New(dir, root string) (*FileLock, error) {
	path, err := PathFor(dir, root)
	if err != nil {
		return nil, err
	}
	return &FileLock{flock: flock.New(path), path: path}, nil
}

// Path returns the lock file path.
func (fl *FileLock) Path() string { return fl.path }

// Acquire takes the exclusive lock, retrying until timeout elapses or ctx is
// done. A zero timeout tries exactly once.
func (fl *FileLock) Acquire(ctx context.Context, timeout time.Duration) error {
	var (
		ok  bool
		err error
	)
	if timeout <= 0 {
		ok, err = fl.flock.TryLock()
	} else {
		tctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		ok, err = fl.flock.TryLockContext(tctx, retryDelay)
		if err != nil && ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			err = nil
		}
	}
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", fl.path, ErrLocked)
	}
	return nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}
