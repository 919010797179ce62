package vocab

import (
	"regexp"
	"strings"
)

// vocabLinkRe matches a link to an anchor: [visible text](#^xxxxxx).
var vocabLinkRe = regexp.MustCompile(`\[([^\[\]]+)\]\(#(\^[0-9a-f]{6})\)`)

// usage is the association table: keyword to the identifiers of the
// sentences that use it, in scan order, each identifier once.
type usage struct {
	ids  map[string][]string
	seen map[string]map[string]bool
}

func newUsage() *usage {
	return &usage{
		ids:  make(map[string][]string),
		seen: make(map[string]map[string]bool),
	}
}

func (u *usage) add(keyword, sentenceID string) {
	s, ok := u.seen[keyword]
	if !ok {
		s = make(map[string]bool)
		u.seen[keyword] = s
	}
	if s[sentenceID] {
		return
	}
	s[sentenceID] = true
	u.ids[keyword] = append(u.ids[keyword], sentenceID)
}

func (u *usage) sentences(keyword string) []string {
	return u.ids[keyword]
}

type linker struct {
	ix    *index
	match *matcher
	ids   *anchors
	used  *usage
}

// linkSentences rewrites the sentence section in place and fills the
// association table. It returns how many lines gained an identifier.
func (l *linker) linkSentences(lines []string) int {
	added := 0
	for i, line := range lines {
		if isBlank(line) {
			continue
		}
		out, appended := l.linkLine(line)
		lines[i] = out
		if appended {
			added++
		}
	}
	return added
}

// linkLine links one sentence and reports whether an identifier was
// appended to it.
func (l *linker) linkLine(line string) (string, bool) {
	sentenceID := ""
	if m := trailingAnchorRe.FindStringSubmatch(line); m != nil {
		sentenceID = m[1]
	}
	// Generated lazily so lines without keywords do not consume one.
	id := func() string {
		if sentenceID == "" {
			sentenceID = l.ids.next()
		}
		return sentenceID
	}

	var used []string
	line = vocabLinkRe.ReplaceAllStringFunc(line, func(link string) string {
		m := vocabLinkRe.FindStringSubmatch(link)
		e, ok := l.ix.lookup(Fold(m[1]))
		if !ok {
			return link
		}
		used = append(used, e.Keyword)
		if m[2] == e.ID {
			return link
		}
		return "[" + m[1] + "](#" + e.ID + ")"
	})

	if occ := l.match.find(line); len(occ) > 0 {
		var b strings.Builder
		last := 0
		for _, o := range occ {
			text := line[o.start:o.end]
			e, ok := l.ix.lookup(Fold(text))
			if !ok {
				continue
			}
			used = append(used, e.Keyword)
			b.WriteString(line[last:o.start])
			b.WriteString("[" + text + "](#" + e.ID + ")")
			b.WriteString(line[o.end:o.suffixEnd])
			last = o.suffixEnd
		}
		b.WriteString(line[last:])
		line = b.String()
	}

	if len(used) == 0 {
		return line, false
	}
	sid := id()
	for _, kw := range used {
		l.used.add(kw, sid)
	}
	if strings.HasSuffix(strings.TrimRight(line, " \t"), sid) {
		return line, false
	}
	return line + " " + sid, true
}
