package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/kamusis/vocablink/internal/config"
	"github.com/kamusis/vocablink/internal/notes"
	"github.com/kamusis/vocablink/internal/vocab"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run pre-flight environment checks",
	Long: `Check that the vocablink config, notes root and lock directory are usable.
Run this command when something seems wrong, or before filing a bug report.`,
	RunE: runDoctor,
}

var doctorFixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Automatically fix detected issues",
	Long: `Fix detected issues in the notes tree.

Currently fixes:
  - Leftover temporary files from interrupted writes

Run 'vocablink doctor' first to see what will be fixed.`,
	RunE: runDoctorFix,
}

func init() {
	doctorCmd.AddCommand(doctorFixCmd)
	rootCmd.AddCommand(doctorCmd)
}

func runDoctorFix(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig("")
	if err != nil {
		return err
	}

	printSection("vocablink doctor fix")
	fmt.Println("\n[ Leftover temp files ]")
	leftovers := findTempFiles(cfg.NotesRoot, cfg.Extensions)
	if len(leftovers) == 0 {
		printOK("", "no leftover temp files found, nothing to fix")
		return nil
	}

	var failed int
	for _, rel := range leftovers {
		if err := os.Remove(filepath.Join(cfg.NotesRoot, rel)); err != nil {
			printErr("", fmt.Sprintf("cannot delete %s: %v", rel, err))
			failed++
		} else {
			printOK("", fmt.Sprintf("deleted %s", rel))
		}
	}
	fmt.Println()
	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be deleted", failed)
	}
	return nil
}

func runDoctor(_ *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("vocablink doctor")
	fmt.Println()

	// ── Check 1: config file ──────────────────────────────────────────────────
	fmt.Println("[ vocablink.yaml ]")
	cfgPath, err := config.ConfigPath()
	if err != nil {
		failD("cannot determine home directory: %v", err)
	} else if !fileExists(cfgPath) {
		printWarn("", fmt.Sprintf("%s not found, using defaults (run 'vocablink init')", cfgPath))
	}
	cfg, loadErr := config.Load()
	if loadErr != nil {
		failD("cannot load config: %v", loadErr)
	} else if err := cfg.Validate(); err != nil {
		failD("%v", err)
		loadErr = err
	} else {
		printOK("", "config is valid")
	}
	fmt.Println()

	// ── Check 2: match policy ─────────────────────────────────────────────────
	fmt.Println("[ Match policy ]")
	if loadErr == nil {
		policy, _ := cfg.Policy()
		printOK("", policy.String())
	} else {
		printWarn("", "skipped (config not loaded)")
	}
	fmt.Println()

	// ── Check 3: notes root ───────────────────────────────────────────────────
	fmt.Println("[ Notes root ]")
	if loadErr == nil {
		if info, err := os.Stat(cfg.NotesRoot); err != nil || !info.IsDir() {
			failD("notes root %s is not a directory", cfg.NotesRoot)
		} else {
			found, err := notes.Discover(cfg.NotesRoot, cfg.Extensions, cfg.Excludes)
			if err != nil {
				failD("cannot scan %s: %v", cfg.NotesRoot, err)
			} else {
				printOK("", fmt.Sprintf("%s: %d note(s), %d with a separator line",
					cfg.NotesRoot, len(found), countEligible(found)))
			}
		}
	} else {
		printWarn("", "skipped (config not loaded)")
	}
	fmt.Println()

	// ── Check 4: lock directory ───────────────────────────────────────────────
	fmt.Println("[ Lock directory ]")
	if err := checkLockDir(); err != nil {
		failD("%v", err)
	} else {
		dir, _ := notes.DefaultLockDir()
		printOK("", fmt.Sprintf("writable: %s", dir))
	}
	fmt.Println()

	// ── Check 5: leftover temp files ──────────────────────────────────────────
	fmt.Println("[ Leftover temp files ]")
	if loadErr == nil {
		leftovers := findTempFiles(cfg.NotesRoot, cfg.Extensions)
		if len(leftovers) == 0 {
			printOK("", "none")
		} else {
			for _, f := range leftovers {
				printWarn("", f)
			}
			fmt.Println("\n     Run 'vocablink doctor fix' to remove them.")
			allOK = false
		}
	} else {
		printWarn("", "skipped (config not loaded)")
	}
	fmt.Println()

	// ── Summary ───────────────────────────────────────────────────────────────
	fmt.Println("===================")
	if allOK {
		fmt.Println("✓  All checks passed. vocablink is ready to use.")
		return nil
	}
	fmt.Fprintln(os.Stderr, "✗  One or more checks failed. See details above.")
	return fmt.Errorf("doctor found issues")
}

// checkLockDir probes that a lock file can be created and taken.
func checkLockDir() error {
	dir, err := notes.DefaultLockDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create lock dir %s: %w", dir, err)
	}
	probe := filepath.Join(dir, "doctor.lock")
	l := flock.New(probe)
	locked, err := l.TryLock()
	if err != nil {
		return fmt.Errorf("cannot lock %s: %w", probe, err)
	}
	if !locked {
		return fmt.Errorf("lock probe %s is held by another process", probe)
	}
	_ = l.Unlock()
	_ = os.Remove(probe)
	return nil
}

func countEligible(paths []string) int {
	n := 0
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err == nil && vocab.Eligible(string(b)) {
			n++
		}
	}
	return n
}

// findTempFiles walks root and returns relative paths of temp files left by
// interrupted writes: ".<note>.<random>.tmp".
func findTempFiles(root string, exts []string) []string {
	var found []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if isTempFile(d.Name(), exts) {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			found = append(found, rel)
		}
		return nil
	})
	return found
}

func isTempFile(name string, exts []string) bool {
	if !strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".tmp") {
		return false
	}
	trimmed := strings.TrimSuffix(strings.TrimPrefix(name, "."), ".tmp")
	i := strings.LastIndex(trimmed, ".")
	if i <= 0 {
		return false
	}
	return notes.HasExt(trimmed[:i], exts)
}
