package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/vocablink/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the vocablink config and .env template",
	Long: `Write ~/.vocablink/vocablink.yaml with default settings and a
~/.vocablink/.env template for overrides. Existing files are left alone.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var flagNotesRoot string

func init() {
	initCmd.Flags().StringVar(&flagNotesRoot, "notes-root", "", "Directory holding your notes (default ~/notes)")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	// ── 1. Resolve ~/.vocablink ───────────────────────────────────────────────
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}
	printOK("", fmt.Sprintf("vocablink directory ready: %s", dir))

	// ── 2. Write vocablink.yaml if missing ────────────────────────────────────
	if fileExists(cfgPath) {
		printSkip("", fmt.Sprintf("Config already exists: %s", cfgPath))
	} else {
		cfg, err := config.DefaultConfig()
		if err != nil {
			return err
		}
		if flagNotesRoot != "" {
			cfg.NotesRoot = flagNotesRoot
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Config written: %s", cfgPath))
	}

	// ── 3. Write .env template ────────────────────────────────────────────────
	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	envPath, _ := config.DotEnvPath()
	printOK("", fmt.Sprintf(".env template ready: %s", envPath))

	// ── 4. Check the notes root ───────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if info, err := os.Stat(cfg.NotesRoot); err != nil || !info.IsDir() {
		printWarn("", fmt.Sprintf("notes root %s does not exist yet; create it or edit notes_root", cfg.NotesRoot))
	} else {
		printOK("", fmt.Sprintf("Notes root: %s", cfg.NotesRoot))
	}

	fmt.Println("\n✓  vocablink init complete. Run 'vocablink status' to see which notes need linking.")
	return nil
}
