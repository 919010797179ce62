package vocab

import (
	"regexp"
	"strings"
)

var (
	// wordLineRe is the vocabulary line grammar: a leading run of letters
	// and hyphens, then whatever follows.
	wordLineRe = regexp.MustCompile(`^([A-Za-z-]+)\s*(.*)$`)

	// leadingLinkRe matches a bracket link at the start of the remainder.
	leadingLinkRe = regexp.MustCompile(`^\[(.*?)\]\(.*?\)`)

	// backlinkLabelRe matches the sN labels this package writes.
	backlinkLabelRe = regexp.MustCompile(`^s\d`)
)

// Entry is one parsed vocabulary line.
type Entry struct {
	Word    string // as written
	Keyword string // case-folded Word
	Aux     string // hand-written link kept next to the word, may be empty
	ID      string // anchor identifier including the caret
	Line    int    // index within the vocabulary section
}

// index maps keywords to their entries for one run.
type index struct {
	entries  map[string]*Entry
	keywords []string // first-seen order, no duplicates
}

func (ix *index) lookup(keyword string) (*Entry, bool) {
	e, ok := ix.entries[keyword]
	return e, ok
}

// ordered returns entries in the order their words first appear.
func (ix *index) ordered() []Entry {
	out := make([]Entry, 0, len(ix.keywords))
	for _, kw := range ix.keywords {
		out = append(out, *ix.entries[kw])
	}
	return out
}

// buildIndex parses the vocabulary section. A word listed twice keeps the
// entry from its first line.
func buildIndex(lines []string, ids *anchors) *index {
	ix := &index{entries: make(map[string]*Entry)}
	for i, line := range lines {
		if isBlank(line) {
			continue
		}
		e, ok := parseVocabLine(line)
		if !ok {
			continue
		}
		if _, dup := ix.entries[e.Keyword]; dup {
			continue
		}
		if e.ID == "" {
			e.ID = ids.next()
		}
		e.Line = i
		ix.entries[e.Keyword] = &e
		ix.keywords = append(ix.keywords, e.Keyword)
	}
	return ix
}

// parseVocabLine splits a vocabulary line into word, auxiliary link and
// any identifier found in the remainder.
func parseVocabLine(line string) (Entry, bool) {
	m := wordLineRe.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}
	e := Entry{Word: m[1], Keyword: Fold(m[1])}
	rest := m[2]
	if lm := leadingLinkRe.FindStringSubmatch(rest); lm != nil && !backlinkLabelRe.MatchString(lm[1]) {
		e.Aux = lm[0]
		rest = strings.TrimLeft(rest[len(lm[0]):], " \t")
	}
	e.ID = findEntryID(rest)
	return e, true
}

// findEntryID returns the first identifier in s that is not the target of
// a back-link, i.e. not followed by ')'.
func findEntryID(s string) string {
	for _, loc := range anchorRe.FindAllStringIndex(s, -1) {
		if loc[1] < len(s) && s[loc[1]] == ')' {
			continue
		}
		return s[loc[0]:loc[1]]
	}
	return ""
}
