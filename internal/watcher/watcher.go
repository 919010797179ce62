package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kamusis/vocablink/internal/notes"
)

// Operation is the kind of change seen on a note.
type Operation int

const (
	// OpCreate means the note appeared, including being renamed into place.
	OpCreate Operation = iota
	// OpModify means the note's content was written.
	OpModify
)

// String returns a human-readable representation of the operation.
func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpModify:
		return "MODIFY"
	default:
		return "UNKNOWN"
	}
}

// FileEvent is a change to one note.
type FileEvent struct {
	// Path is the absolute path of the note.
	Path      string
	Operation Operation
	Timestamp time.Time
}

// Options configures the watcher.
type Options struct {
	// DebounceWindow is how long the tree must be quiet before a batch is
	// emitted. Default: 500ms.
	DebounceWindow time.Duration

	// Extensions selects which files count as notes. Default: .md, .txt.
	Extensions []string

	// Excludes are glob patterns for paths to ignore.
	Excludes []string

	// EventBufferSize is the size of the batch channel. Default: 100.
	EventBufferSize int
}

// DefaultOptions returns the default watcher options.
func DefaultOptions() Options {
	return Options{
		DebounceWindow:  500 * time.Millisecond,
		Extensions:      []string{".md", ".txt"},
		EventBufferSize: 100,
	}
}

// WithDefaults returns options with defaults applied for zero values.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.DebounceWindow <= 0 {
		o.DebounceWindow = d.DebounceWindow
	}
	if len(o.Extensions) == 0 {
		o.Extensions = d.Extensions
	}
	if o.EventBufferSize <= 0 {
		o.EventBufferSize = d.EventBufferSize
	}
	return o
}

// Watcher watches a directory tree for note changes.
type Watcher struct {
	fs        *fsnotify.Watcher
	debouncer *Debouncer
	opts      Options
	root      string
	events    chan []FileEvent
	errors    chan error
	stopCh    chan struct{}
	mu        sync.RWMutex
	stopped   bool
}

// New creates a watcher. Call Start to begin watching.
func New(opts Options) (*Watcher, error) {
	opts = opts.WithDefaults()
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	return &Watcher{
		fs:        fsw,
		debouncer: NewDebouncer(opts.DebounceWindow),
		opts:      opts,
		events:    make(chan []FileEvent, opts.EventBufferSize),
		errors:    make(chan error, 10),
		stopCh:    make(chan struct{}),
	}, nil
}

// Start watches root until ctx is cancelled or Stop is called. It blocks.
func (w *Watcher) Start(ctx context.Context, root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve absolute path: %w", err)
	}
	w.mu.Lock()
	w.root = abs
	w.mu.Unlock()

	if err := w.addRecursive(abs); err != nil {
		return fmt.Errorf("add directories to watcher: %w", err)
	}

	go w.forward(ctx)

	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.emitError(err)
		}
	}
}

// handle turns an fsnotify event into a FileEvent for the debouncer.
func (w *Watcher) handle(ev fsnotify.Event) {
	info, statErr := os.Stat(ev.Name)
	if statErr == nil && info.IsDir() {
		if ev.Op&fsnotify.Create != 0 && !w.ignored(ev.Name) {
			if err := w.addRecursive(ev.Name); err != nil {
				w.emitError(err)
			}
		}
		return
	}

	var op Operation
	switch {
	case ev.Op&fsnotify.Create != 0:
		op = OpCreate
	case ev.Op&fsnotify.Write != 0:
		op = OpModify
	default:
		// Removes, renames away and chmods leave nothing to link.
		return
	}
	if statErr != nil || !notes.HasExt(ev.Name, w.opts.Extensions) || w.ignored(ev.Name) {
		return
	}
	w.debouncer.Add(FileEvent{Path: ev.Name, Operation: op, Timestamp: time.Now()})
}

// ignored reports whether path falls under an exclude pattern.
func (w *Watcher) ignored(path string) bool {
	w.mu.RLock()
	root := w.root
	w.mu.RUnlock()

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	// Any excluded ancestor excludes the path too.
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for i := range parts {
		if notes.MatchesExclude(strings.Join(parts[:i+1], "/"), w.opts.Excludes) {
			return true
		}
	}
	return false
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip what we cannot read
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.ignored(path) {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
}

// forward moves debounced batches to the Events channel.
func (w *Watcher) forward(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case batch, ok := <-w.debouncer.Output():
			if !ok {
				return
			}
			if len(batch) > 0 {
				w.emitEvents(batch)
			}
		}
	}
}

func (w *Watcher) emitEvents(batch []FileEvent) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return
	}
	select {
	case w.events <- batch:
	default:
		slog.Warn("event buffer full, dropping batch", slog.Int("batch_size", len(batch)))
	}
}

func (w *Watcher) emitError(err error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return
	}
	select {
	case w.errors <- err:
	default:
	}
}

// Stop stops the watcher and closes its channels. Safe to call multiple
// times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopCh)
	w.debouncer.Stop()
	err := w.fs.Close()
	close(w.events)
	close(w.errors)
	return err
}

// Events returns debounced batches of note changes.
func (w *Watcher) Events() <-chan []FileEvent {
	return w.events
}

// Errors returns non-fatal watcher errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}
