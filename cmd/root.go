package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/vocablink/internal/config"
	"github.com/kamusis/vocablink/internal/logging"
)

var (
	flagLogLevel string
	flagLogJSON  bool
)

var rootCmd = &cobra.Command{
	Use:          "vocablink",
	Short:        "vocablink — link vocabulary notes to their example sentences",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `vocablink rewrites vocabulary notes so every word links to the sentences
that use it and every sentence links back to its words.

A note is eligible when it has a line containing only "---": words go above
it, example sentences below.`,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Write logs as JSON")
}

// setupLogging installs the default logger before any command runs.
func setupLogging(cmd *cobra.Command, _ []string) error {
	level := flagLogLevel
	if level == "" {
		if cfg, err := config.Load(); err == nil {
			level = cfg.LogLevel
		}
	}
	if level != "" && !logging.ValidLevel(level) {
		return fmt.Errorf("unknown log level %q", level)
	}
	logging.Setup(logging.Config{Level: level, JSON: flagLogJSON, Writer: cmd.ErrOrStderr()})
	return nil
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
