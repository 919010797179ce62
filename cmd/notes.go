package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kamusis/vocablink/internal/config"
	"github.com/kamusis/vocablink/internal/notes"
	"github.com/kamusis/vocablink/internal/vocab"
)

// noteResult is the outcome of linking one note.
type noteResult struct {
	Path    string
	Outcome notes.Outcome
	Err     error
}

// summary counts results by outcome.
type summary struct {
	Updated, Unchanged, Skipped, Failed int
}

func summarize(results []noteResult) summary {
	var s summary
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Failed++
		case r.Outcome == notes.OutcomeUpdated:
			s.Updated++
		case r.Outcome == notes.OutcomeUnchanged:
			s.Unchanged++
		default:
			s.Skipped++
		}
	}
	return s
}

// loadConfig loads and validates the config, applying a --policy override
// when non-empty.
func loadConfig(policy string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	if policy != "" {
		cfg.MatchPolicy = policy
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newStore builds a note store for cfg.
func newStore(cfg *config.Config, dryRun bool) (*notes.Store, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	return notes.NewStore(vocab.Options{Policy: policy}, notes.WithDryRun(dryRun))
}

// resolveNotes expands args (files or directories) into note paths. With
// no args the configured notes root is used.
func resolveNotes(cfg *config.Config, args []string) ([]string, error) {
	roots := args
	if len(roots) == 0 {
		roots = []string{cfg.NotesRoot}
	}
	seen := make(map[string]bool)
	var out []string
	for _, root := range roots {
		root, err := config.ExpandPath(root)
		if err != nil {
			return nil, err
		}
		found, err := notes.Discover(root, cfg.Extensions, cfg.Excludes)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out, nil
}

// linkNotes updates every path with at most workers notes in flight.
// Per-note failures are recorded in the result rather than cancelling the
// rest; only ctx cancellation stops the run early. p may be nil.
func linkNotes(ctx context.Context, store *notes.Store, paths []string, workers int, p *progress) ([]noteResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]noteResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcome, err := store.Update(path)
			results[i] = noteResult{Path: path, Outcome: outcome, Err: err}
			if err != nil {
				slog.Warn("note failed", "path", path, "err", err)
			} else {
				slog.Debug("note processed", "path", path, "outcome", outcome)
			}
			p.step()
			return nil
		})
	}
	err := g.Wait()
	p.finish()
	return results, err
}

// displayName shortens path relative to root for output.
func displayName(root, path string) string {
	if root != "" {
		if rel, err := filepath.Rel(root, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return path
}

// reportResults prints one line per note that changed or failed.
func reportResults(root string, results []noteResult, dryRun bool) {
	for _, r := range results {
		if r.Path == "" {
			continue
		}
		name := displayName(root, r.Path)
		switch {
		case r.Err != nil:
			printErr(name, r.Err.Error())
		case r.Outcome == notes.OutcomeUpdated && dryRun:
			printInfo(name, "would be linked")
		case r.Outcome == notes.OutcomeUpdated:
			printOK(name, "linked")
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
