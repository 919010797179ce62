package notes

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kamusis/vocablink/internal/vocab"
)

// Outcome is what Update did to a note.
type Outcome int

const (
	// OutcomeSkipped means the note has no separator line.
	OutcomeSkipped Outcome = iota
	// OutcomeUnchanged means linking produced the same text.
	OutcomeUnchanged
	// OutcomeUpdated means the note was rewritten.
	OutcomeUpdated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// Store reads and writes notes. The zero value is not usable; call
// NewStore.
type Store struct {
	opts        vocab.Options
	lockDir     string
	lockTimeout time.Duration
	dryRun      bool
	logger      *slog.Logger

	mu      sync.Mutex
	written map[string]string // path -> fingerprint of our last write
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLockDir sets where lock files are created.
func WithLockDir(dir string) StoreOption {
	return func(s *Store) { s.lockDir = dir }
}

// WithLockTimeout bounds how long Update waits for another process.
func WithLockTimeout(d time.Duration) StoreOption {
	return func(s *Store) { s.lockTimeout = d }
}

// WithDryRun makes Update compute outcomes without writing.
func WithDryRun(dry bool) StoreOption {
	return func(s *Store) { s.dryRun = dry }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// NewStore returns a Store that links notes with opts.
func NewStore(opts vocab.Options, options ...StoreOption) (*Store, error) {
	s := &Store{
		opts:        opts,
		lockTimeout: 5 * time.Second,
		written:     make(map[string]string),
	}
	for _, o := range options {
		o(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.lockDir == "" {
		dir, err := DefaultLockDir()
		if err != nil {
			return nil, err
		}
		s.lockDir = dir
	}
	if err := os.MkdirAll(s.lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create lock dir %s: %w", s.lockDir, err)
	}
	return s, nil
}

// Read returns the text of the note at path.
func (s *Store) Read(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read note %s: %w", path, err)
	}
	return string(b), nil
}

// Write replaces the note at path with text. The new content lands in a
// temporary file next to the note and is renamed over it, keeping the
// note's permissions.
func (s *Store) Write(path, text string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cannot stat note %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("cannot write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("cannot sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		cleanup()
		return err
	}
	if err := replaceFile(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("cannot replace %s: %w", path, err)
	}

	s.mu.Lock()
	s.written[path] = Fingerprint(text)
	s.mu.Unlock()
	return nil
}

// Update links the note at path and writes it back when the text changed.
func (s *Store) Update(path string) (Outcome, error) {
	unlock, err := s.lock(path)
	if err != nil {
		return OutcomeSkipped, err
	}
	defer unlock()

	text, err := s.Read(path)
	if err != nil {
		return OutcomeSkipped, err
	}
	if !vocab.Eligible(text) {
		s.logger.Debug("note has no separator", slog.String("path", path))
		return OutcomeSkipped, nil
	}
	out := vocab.Process(text, s.opts)
	if out == text {
		return OutcomeUnchanged, nil
	}
	if s.dryRun {
		return OutcomeUpdated, nil
	}
	if err := s.Write(path, out); err != nil {
		return OutcomeSkipped, err
	}
	s.logger.Info("note linked", slog.String("path", path))
	return OutcomeUpdated, nil
}

// WroteLast reports whether the note at path still holds exactly what
// this Store last wrote there. The watcher uses it to ignore its own
// writes.
func (s *Store) WroteLast(path string) bool {
	s.mu.Lock()
	fp, ok := s.written[path]
	s.mu.Unlock()
	if !ok {
		return false
	}
	text, err := s.Read(path)
	if err != nil {
		return false
	}
	return Fingerprint(text) == fp
}
