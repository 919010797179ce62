package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kamusis/vocablink/internal/config"
	"github.com/kamusis/vocablink/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Link notes now and again whenever they change",
	Long: `Run once over the notes root (or the given directory), then keep
watching it and re-link notes shortly after they are saved.
Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagPolicy, "policy", "", "Match policy: prefix or whole-word (default from config)")
	watchCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Number of notes processed in parallel (default from config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flagPolicy)
	if err != nil {
		return err
	}
	root := cfg.NotesRoot
	if len(args) == 1 {
		if root, err = config.ExpandPath(args[0]); err != nil {
			return err
		}
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("notes root %s is not a directory", root)
	}
	workers := cfg.Workers
	if flagWorkers > 0 {
		workers = flagWorkers
	}
	window, err := cfg.DebounceWindow()
	if err != nil {
		return err
	}

	store, err := newStore(cfg, false)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printSection("Watch")
	paths, err := resolveNotes(cfg, []string{root})
	if err != nil {
		return err
	}
	results, err := linkNotes(ctx, store, paths, workers, newProgress(os.Stderr, len(paths)))
	reportResults(root, results, false)
	if err != nil {
		return ignoreCanceled(err)
	}
	s := summarize(results)
	printInfo("", fmt.Sprintf("%d note(s) scanned, %d linked; watching %s", len(paths), s.Updated, root))

	w, err := watcher.New(watcher.Options{
		DebounceWindow: window,
		Extensions:     cfg.Extensions,
		Excludes:       cfg.Excludes,
	})
	if err != nil {
		return err
	}
	startErr := make(chan error, 1)
	go func() { startErr <- w.Start(ctx, root) }()

	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			printOK("", "stopped")
			return nil
		case err := <-startErr:
			return ignoreCanceled(err)
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "err", err)
		case batch, ok := <-w.Events():
			if !ok {
				return nil
			}
			var changed []string
			for _, ev := range batch {
				// Our own writes come back as events; skip them.
				if store.WroteLast(ev.Path) {
					continue
				}
				slog.Debug("note changed", "path", ev.Path, "op", ev.Operation)
				changed = append(changed, ev.Path)
			}
			if len(changed) == 0 {
				continue
			}
			results, err := linkNotes(ctx, store, changed, workers, nil)
			reportResults(root, results, false)
			if err != nil {
				return ignoreCanceled(err)
			}
		}
	}
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
