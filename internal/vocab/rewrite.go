package vocab

import (
	"regexp"
	"strings"
)

var leadingWordRe = regexp.MustCompile(`^[A-Za-z-]+`)

// rewriteVocab rebuilds every vocabulary line that names a known word as
//
//	word  <aux> <back-links> <id>
//
// Other lines are left alone.
func rewriteVocab(lines []string, ix *index, backlinks map[string]string) {
	for i, line := range lines {
		w := leadingWordRe.FindString(line)
		if w == "" {
			continue
		}
		e, ok := ix.lookup(Fold(w))
		if !ok {
			continue
		}
		var b strings.Builder
		b.WriteString(wordToken(line))
		if e.Aux != "" {
			b.WriteString("  " + e.Aux)
		}
		if bl := backlinks[e.Keyword]; bl != "" {
			b.WriteString(" " + bl)
		}
		b.WriteString(" " + e.ID)
		lines[i] = b.String()
	}
}

// wordToken is the line up to the first space, '[' or '^'.
func wordToken(line string) string {
	if i := strings.IndexAny(line, " [^"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}
