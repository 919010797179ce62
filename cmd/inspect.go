package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamusis/vocablink/internal/config"
	"github.com/kamusis/vocablink/internal/vocab"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the vocabulary of a note and where each word is used",
	Long: `Print a table of the vocabulary entries in a note: the identifier each
word has (or would get), how many sentences use it and which ones.
The note is not modified.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&flagPolicy, "policy", "", "Match policy: prefix or whole-word (default from config)")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig(flagPolicy)
	if err != nil {
		return err
	}
	path, err := config.ExpandPath(args[0])
	if err != nil {
		return err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read note %s: %w", path, err)
	}
	text := string(b)
	policy, _ := cfg.Policy()

	printSection("Inspect " + path)
	res, ok := vocab.Analyze(text, vocab.Options{Policy: policy})
	if !ok {
		printSkip("", `no "---" separator line; nothing to link`)
		return nil
	}
	writeInspectReport(os.Stdout, text, res)

	fmt.Println()
	printInfo("", fmt.Sprintf("policy: %s", policy))
	printInfo("", fmt.Sprintf("%d entries, %d sentence(s) would gain an identifier", len(res.Entries), res.Anchored))
	if res.Changed {
		printWarn("", "note needs linking (run 'vocablink run "+path+"')")
	} else {
		printOK("", "note is up to date")
	}
	return nil
}

// writeInspectReport prints one row per vocabulary entry. Identifiers not
// yet present in the note are marked "(new)".
func writeInspectReport(out *os.File, original string, res *vocab.Result) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nWORD\tID\tUSES\tSENTENCES")
	for _, e := range res.Entries {
		id := e.ID
		if !strings.Contains(original, e.ID) {
			id += " (new)"
		}
		sentences := res.Usage[e.Keyword]
		list := "-"
		if len(sentences) > 0 {
			list = strings.Join(sentences, " ")
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", e.Word, id, len(sentences), list)
	}
	tw.Flush()
}
