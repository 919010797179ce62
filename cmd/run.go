package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagDryRun  bool
	flagCheck   bool
	flagPolicy  string
	flagWorkers int
)

var runCmd = &cobra.Command{
	Use:   "run [paths...]",
	Short: "Link vocabulary and sentences in notes",
	Long: `Process the given files or directories, or the configured notes root
when none are given. Notes without a "---" separator line are skipped.

  vocablink run                      Link every note under notes_root
  vocablink run words/french.md      Link a single note
  vocablink run --check              Exit non-zero if any note needs linking`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Report what would change without writing")
	runCmd.Flags().BoolVar(&flagCheck, "check", false, "Exit non-zero if any note would change (implies --dry-run)")
	runCmd.Flags().StringVar(&flagPolicy, "policy", "", "Match policy: prefix or whole-word (default from config)")
	runCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Number of notes processed in parallel (default from config)")
	rootCmd.AddCommand(runCmd)
}

var errNeedsLinking = errors.New("notes need linking")

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flagPolicy)
	if err != nil {
		return err
	}
	workers := cfg.Workers
	if flagWorkers > 0 {
		workers = flagWorkers
	}
	dryRun := flagDryRun || flagCheck

	paths, err := resolveNotes(cfg, args)
	if err != nil {
		return err
	}
	store, err := newStore(cfg, dryRun)
	if err != nil {
		return err
	}

	printSection("Link")
	if len(paths) == 0 {
		printSkip("", "no notes found")
		return nil
	}
	results, err := linkNotes(cmd.Context(), store, paths, workers, newProgress(os.Stderr, len(paths)))
	reportResults(cfg.NotesRoot, results, dryRun)
	if err != nil {
		return err
	}

	s := summarize(results)
	fmt.Printf("\n  %d linked, %d unchanged, %d skipped, %d failed\n", s.Updated, s.Unchanged, s.Skipped, s.Failed)
	if s.Failed > 0 {
		return fmt.Errorf("%d note(s) failed", s.Failed)
	}
	if flagCheck && s.Updated > 0 {
		return fmt.Errorf("%w: %d note(s)", errNeedsLinking, s.Updated)
	}
	return nil
}
