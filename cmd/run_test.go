package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kamusis/vocablink/internal/config"
	"github.com/kamusis/vocablink/internal/notes"
	"github.com/kamusis/vocablink/internal/vocab"
)

const linkableNote = "apple\n---\nI ate an apple today.\n"

// setupNotesTest points HOME at a temp dir and creates a notes root with
// one linkable note, one note without a separator and one excluded file.
func setupNotesTest(t *testing.T) (*config.Config, string) {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("USERPROFILE", tmp)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmp, ".cache"))
	for _, k := range []string{"VOCABLINK_NOTES_ROOT", "VOCABLINK_MATCH_POLICY", "VOCABLINK_LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	root := filepath.Join(tmp, "notes")
	files := map[string]string{
		"fruit.md":           linkableNote,
		"plain.md":           "just some text\n",
		"deep/verbs.txt":     "run\n---\nWe run.\n",
		".obsidian/cache.md": linkableNote,
		"deep/image.png":     "not a note",
	}
	for rel, body := range files {
		p := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg, err := config.DefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	cfg.NotesRoot = root
	return cfg, root
}

func TestResolveNotes_DefaultRoot(t *testing.T) {
	cfg, root := setupNotesTest(t)

	got, err := resolveNotes(cfg, nil)
	if err != nil {
		t.Fatalf("resolveNotes: %v", err)
	}
	want := []string{
		filepath.Join(root, "deep", "verbs.txt"),
		filepath.Join(root, "fruit.md"),
		filepath.Join(root, "plain.md"),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d notes %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("note %d: got %s want %s", i, got[i], want[i])
		}
	}
}

func TestResolveNotes_DeduplicatesArgs(t *testing.T) {
	cfg, root := setupNotesTest(t)
	fruit := filepath.Join(root, "fruit.md")

	got, err := resolveNotes(cfg, []string{fruit, root})
	if err != nil {
		t.Fatalf("resolveNotes: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 unique notes, got %v", got)
	}
	if got[0] != fruit {
		t.Errorf("explicit file should come first, got %s", got[0])
	}
}

func TestLinkNotes_LinksThenIsIdempotent(t *testing.T) {
	cfg, root := setupNotesTest(t)
	paths, err := resolveNotes(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	store, err := newStore(cfg, false)
	if err != nil {
		t.Fatal(err)
	}

	results, err := linkNotes(context.Background(), store, paths, 2, nil)
	if err != nil {
		t.Fatalf("linkNotes: %v", err)
	}
	s := summarize(results)
	if s.Updated != 2 || s.Skipped != 1 || s.Failed != 0 {
		t.Fatalf("unexpected first-run summary: %+v", s)
	}

	b, err := os.ReadFile(filepath.Join(root, "fruit.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !vocab.HasAnchor(string(b)) {
		t.Fatalf("fruit.md was not linked:\n%s", b)
	}

	results, err = linkNotes(context.Background(), store, paths, 2, nil)
	if err != nil {
		t.Fatalf("second linkNotes: %v", err)
	}
	s = summarize(results)
	if s.Updated != 0 || s.Unchanged != 2 {
		t.Fatalf("second run should change nothing, got %+v", s)
	}
}

func TestLinkNotes_DryRunLeavesFiles(t *testing.T) {
	cfg, root := setupNotesTest(t)
	fruit := filepath.Join(root, "fruit.md")
	store, err := newStore(cfg, true)
	if err != nil {
		t.Fatal(err)
	}

	results, err := linkNotes(context.Background(), store, []string{fruit}, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Outcome != notes.OutcomeUpdated {
		t.Fatalf("dry run should report an update, got %v", results[0].Outcome)
	}
	b, _ := os.ReadFile(fruit)
	if string(b) != linkableNote {
		t.Fatalf("dry run modified the note:\n%s", b)
	}
}

func TestLinkNotes_RecordsPerNoteErrors(t *testing.T) {
	cfg, root := setupNotesTest(t)
	store, err := newStore(cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(root, "missing.md")

	results, err := linkNotes(context.Background(), store, []string{missing, filepath.Join(root, "fruit.md")}, 1, nil)
	if err != nil {
		t.Fatalf("per-note failure must not abort the run: %v", err)
	}
	if results[0].Err == nil {
		t.Error("expected an error for the missing note")
	}
	if results[1].Outcome != notes.OutcomeUpdated {
		t.Errorf("fruit.md should still be linked, got %v", results[1].Outcome)
	}
}

func TestLinkNotes_CanceledContext(t *testing.T) {
	cfg, root := setupNotesTest(t)
	store, err := newStore(cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = linkNotes(ctx, store, []string{filepath.Join(root, "fruit.md")}, 1, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if ignoreCanceled(err) != nil {
		t.Error("ignoreCanceled should swallow context.Canceled")
	}
}

func TestLoadConfig_PolicyOverride(t *testing.T) {
	setupNotesTest(t)

	cfg, err := loadConfig("whole-word")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	p, _ := cfg.Policy()
	if p != vocab.PolicyWholeWord {
		t.Errorf("policy: got %v want whole-word", p)
	}

	if _, err := loadConfig("fuzzy"); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid for unknown policy, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	opts := vocab.Options{}
	if got := classify("no separator here", opts); got != stateIneligible {
		t.Errorf("plain text: got %v", got)
	}
	if got := classify(linkableNote, opts); got != statePending {
		t.Errorf("unlinked note: got %v", got)
	}
	linked := vocab.Process(linkableNote, opts)
	if got := classify(linked, opts); got != stateClean {
		t.Errorf("linked note: got %v", got)
	}
}

func TestSummarize(t *testing.T) {
	results := []noteResult{
		{Outcome: notes.OutcomeUpdated},
		{Outcome: notes.OutcomeUpdated},
		{Outcome: notes.OutcomeUnchanged},
		{Outcome: notes.OutcomeSkipped},
		{Outcome: notes.OutcomeSkipped, Err: errors.New("boom")},
	}
	got := summarize(results)
	want := summary{Updated: 2, Unchanged: 1, Skipped: 1, Failed: 1}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestDisplayName(t *testing.T) {
	root := filepath.Join("home", "notes")
	cases := []struct {
		path, want string
	}{
		{filepath.Join(root, "a.md"), "a.md"},
		{filepath.Join(root, "deep", "b.md"), filepath.Join("deep", "b.md")},
		{filepath.Join("elsewhere", "c.md"), filepath.Join("elsewhere", "c.md")},
	}
	for _, c := range cases {
		if got := displayName(root, c.path); got != c.want {
			t.Errorf("displayName(%q): got %q want %q", c.path, got, c.want)
		}
	}
}

func TestFindTempFiles(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{".fruit.md.12345.tmp", "fruit.md", ".hidden.tmp", "scratch.tmp"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got := findTempFiles(root, []string{".md", ".txt"})
	if len(got) != 1 || got[0] != ".fruit.md.12345.tmp" {
		t.Fatalf("got %v, want only the note temp file", got)
	}
}

func TestProgress_SilentOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(&buf, 3)
	if p != nil {
		t.Fatal("progress should be disabled for a non-terminal writer")
	}
	// nil progress must be safe to use.
	p.step()
	p.finish()
	if buf.Len() != 0 {
		t.Errorf("unexpected output %q", buf.String())
	}
}
