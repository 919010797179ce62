package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamusis/vocablink/internal/vocab"
)

var statusCmd = &cobra.Command{
	Use:   "status [paths...]",
	Short: "Show which notes need linking",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// noteState groups notes for the status report.
type noteState int

const (
	stateClean noteState = iota
	statePending
	stateIneligible
)

// classify reports whether the note text would change under opts.
func classify(text string, opts vocab.Options) noteState {
	res, ok := vocab.Analyze(text, opts)
	switch {
	case !ok:
		return stateIneligible
	case res.Changed:
		return statePending
	default:
		return stateClean
	}
}

func runStatus(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig("")
	if err != nil {
		return err
	}
	policy, _ := cfg.Policy()
	opts := vocab.Options{Policy: policy}

	paths, err := resolveNotes(cfg, args)
	if err != nil {
		return err
	}
	store, err := newStore(cfg, true)
	if err != nil {
		return err
	}

	fmt.Println("=== Note Status ===")
	var clean, pending, ineligible, failed []string
	for _, p := range paths {
		name := displayName(cfg.NotesRoot, p)
		text, err := store.Read(p)
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		switch classify(text, opts) {
		case statePending:
			pending = append(pending, name)
		case stateIneligible:
			ineligible = append(ineligible, name)
		default:
			clean = append(clean, name)
		}
	}

	if len(pending) > 0 {
		printBullet("Needs linking:")
		for _, n := range pending {
			printWarn(n, "would change")
		}
	}
	if len(clean) > 0 {
		printBullet("Up to date:")
		for _, n := range clean {
			printOK(n, "linked")
		}
	}
	if len(ineligible) > 0 {
		printBullet("No separator:")
		for _, n := range ineligible {
			printSkip(n, "skipped")
		}
	}
	if len(failed) > 0 {
		printBullet("Errors:")
		for _, f := range failed {
			printErr("", f)
		}
	}

	fmt.Printf("\n  %d note(s): %d need linking, %d up to date, %d without separator\n",
		len(paths), len(pending), len(clean), len(ineligible))
	if len(failed) > 0 {
		return fmt.Errorf("%d note(s) could not be read", len(failed))
	}
	return nil
}
