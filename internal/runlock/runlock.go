// Package runlock keeps two pipeline runs from driving the same store at once.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// DefaultFile is the lock file used when none is configured.
const DefaultFile = ".talentcrew.lock"

// ErrLocked is returned when another process holds the lock.
var ErrLocked = errors.New("another pipeline run is in progress")

// Lock is an exclusive, non-blocking file lock.
type Lock struct {
	fl *flock.Flock
}

// Acquire takes the lock at path. It fails with ErrLocked instead of waiting.
func Acquire(path string) (*Lock, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultFile
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating lock directory %q: %w", dir, err)
		}
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking %q: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock file %s)", ErrLocked, path)
	}

	return &Lock{fl: fl}, nil
}

func (l *Lock) Path() string {
	return l.fl.Path()
}

// Release unlocks. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("unlocking %q: %w", l.fl.Path(), err)
	}
	return nil
}
