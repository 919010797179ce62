package vocab

import "strings"

// Options configures one run. The zero value links with PolicyPrefix and
// random identifiers.
type Options struct {
	Policy MatchPolicy
	NewID  IDGenerator
}

// Result describes one run over a note.
type Result struct {
	Text    string
	Changed bool

	// Entries lists the vocabulary in order of first appearance.
	Entries []Entry
	// Usage maps each keyword to the identifiers of the sentences that use
	// it, in back-link order.
	Usage map[string][]string
	// Anchored counts sentence lines that were given a new identifier.
	Anchored int
}

// Process returns text with vocabulary and sentences linked. Text without
// a separator line comes back unchanged.
func Process(text string, opts Options) string {
	res, ok := Analyze(text, opts)
	if !ok {
		return text
	}
	return res.Text
}

// Analyze runs the linker and reports what it found. ok is false when text
// has no separator line.
func Analyze(text string, opts Options) (res *Result, ok bool) {
	work := text
	crlf := isCRLF(text)
	if crlf {
		work = strings.ReplaceAll(text, "\r\n", "\n")
	}

	doc, ok := Split(work)
	if !ok {
		return nil, false
	}

	ids := newAnchors(opts.NewID, work)
	ix := buildIndex(doc.Vocab, ids)
	l := &linker{
		ix:    ix,
		match: compileMatcher(ix.keywords, opts.Policy),
		ids:   ids,
		used:  newUsage(),
	}
	anchored := l.linkSentences(doc.Sentences)
	rewriteVocab(doc.Vocab, ix, composeBacklinks(l.used))

	doc.Vocab = padAnchors(doc.Vocab)
	doc.Sentences = padAnchors(doc.Sentences)

	out := doc.Join()
	if crlf {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	return &Result{
		Text:     out,
		Changed:  out != text,
		Entries:  ix.ordered(),
		Usage:    l.used.ids,
		Anchored: anchored,
	}, true
}
