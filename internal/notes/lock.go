package notes

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrLocked means another process held the note's lock past the timeout.
var ErrLocked = errors.New("note is locked by another process")

// DefaultLockDir returns the per-user directory holding note locks.
func DefaultLockDir() (string, error) {
	if cacheDir, err := os.UserCacheDir(); err == nil && cacheDir != "" {
		return filepath.Join(cacheDir, "vocablink", "locks"), nil
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".vocablink", "locks"), nil
	}
	return "", fmt.Errorf("cannot determine writable lock directory")
}

// lockPath maps a note to its lock file. Locks live outside the notes tree
// so note folders stay clean.
func (s *Store) lockPath(notePath string) string {
	abs, err := filepath.Abs(notePath)
	if err != nil {
		abs = notePath
	}
	sum := sha1.Sum([]byte(abs))
	return filepath.Join(s.lockDir, fmt.Sprintf("%x.lock", sum[:8]))
}

// lock takes the note's advisory lock, retrying until the store's timeout.
func (s *Store) lock(notePath string) (func(), error) {
	lockPath := s.lockPath(notePath)
	l := flock.New(lockPath)
	deadline := time.Now().Add(s.lockTimeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return func() {}, fmt.Errorf("cannot acquire lock for %s: %w", notePath, err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return func() {}, fmt.Errorf("%s (lock: %s): %w", notePath, lockPath, ErrLocked)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
