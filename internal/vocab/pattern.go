package vocab

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MatchPolicy controls how far a match may run past its keyword.
type MatchPolicy int

const (
	// PolicyPrefix lets a keyword match the start of a longer word. The
	// keyword is linked and the rest of the word follows the link:
	// "connectivity" becomes "[connect](#^id)ivity".
	PolicyPrefix MatchPolicy = iota
	// PolicyWholeWord links a keyword only when it is a complete word.
	PolicyWholeWord
)

// String returns the config spelling of p.
func (p MatchPolicy) String() string {
	switch p {
	case PolicyPrefix:
		return "prefix"
	case PolicyWholeWord:
		return "whole-word"
	default:
		return fmt.Sprintf("MatchPolicy(%d)", int(p))
	}
}

// ParsePolicy parses "prefix" or "whole-word". The empty string selects
// PolicyPrefix.
func ParsePolicy(s string) (MatchPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "prefix":
		return PolicyPrefix, nil
	case "whole-word", "wholeword", "word":
		return PolicyWholeWord, nil
	default:
		return 0, fmt.Errorf("unknown match policy %q (want prefix or whole-word)", s)
	}
}

const wordClass = `[\p{L}\p{N}_]`

// protectedRe finds spans the matcher must never touch: markdown links,
// wiki links and anchor identifiers.
// Link text never contains a bracket, so a stray '[' earlier in the line
// cannot swallow a real link.
var protectedRe = regexp.MustCompile(`\[\[[^\[\]]*\]\]|\[[^\[\]]*\]\([^)]*\)|\^[0-9a-f]{6}`)

// matcher is the master pattern built from every keyword.
type matcher struct {
	re     *regexp.Regexp
	policy MatchPolicy
}

// occurrence is one keyword found in a line. The keyword spans
// [start,end); suffix runs to suffixEnd.
type occurrence struct {
	start, end, suffixEnd int
}

// compileMatcher builds the master pattern. Longer keywords come first so
// "enablement" wins over "enable". Keywords without a letter or digit,
// such as the "-" of a bullet line, are never matched. It returns nil when
// no keyword is left.
func compileMatcher(keywords []string, policy MatchPolicy) *matcher {
	var sorted []string
	for _, kw := range keywords {
		if strings.IndexFunc(kw, isWordRune) >= 0 {
			sorted = append(sorted, kw)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i]) > utf8.RuneCountInString(sorted[j])
	})
	quoted := make([]string, len(sorted))
	for i, kw := range sorted {
		quoted[i] = regexp.QuoteMeta(kw)
	}
	alt := strings.Join(quoted, "|")

	var expr string
	switch policy {
	case PolicyWholeWord:
		expr = `(?i)(` + alt + `)(?:[^\p{L}\p{N}_]|$)`
	default:
		expr = `(?i)(` + alt + `)(` + wordClass + `*)`
	}
	return &matcher{re: regexp.MustCompile(expr), policy: policy}
}

// find returns every linkable occurrence in line, left to right.
func (m *matcher) find(line string) []occurrence {
	if m == nil {
		return nil
	}
	protected := protectedRe.FindAllStringIndex(line, -1)

	var out []occurrence
	pos := 0
	for pos < len(line) {
		loc := m.re.FindStringSubmatchIndex(line[pos:])
		if loc == nil {
			break
		}
		o := occurrence{start: pos + loc[2], end: pos + loc[3]}
		o.suffixEnd = o.end
		if m.policy == PolicyPrefix {
			o.suffixEnd = pos + loc[5]
		}

		if span, inside := spanAt(protected, o.start); inside {
			pos = span[1]
			continue
		}
		if !startsWord(line, o.start, protected) || closesBracket(line, o.suffixEnd) ||
			(m.policy == PolicyWholeWord && opensSpan(protected, o.end)) {
			_, size := utf8.DecodeRuneInString(line[o.start:])
			pos = o.start + size
			continue
		}
		out = append(out, o)
		pos = o.suffixEnd
	}
	return out
}

// spanAt returns the protected span containing i.
func spanAt(spans [][]int, i int) ([]int, bool) {
	for _, s := range spans {
		if s[0] <= i && i < s[1] {
			return s, true
		}
		if s[0] > i {
			break
		}
	}
	return nil, false
}

// startsWord reports whether a match may begin at i: the previous rune is
// not a word character or '[', and i does not directly follow a link.
func startsWord(line string, i int, protected [][]int) bool {
	if i == 0 {
		return true
	}
	for _, s := range protected {
		if s[1] == i {
			return false
		}
	}
	r, _ := utf8.DecodeLastRuneInString(line[:i])
	return r != '[' && !isWordRune(r)
}

// opensSpan reports whether a protected span starts at i. A whole word may
// not run straight into a link or identifier.
func opensSpan(spans [][]int, i int) bool {
	for _, s := range spans {
		if s[0] == i {
			return true
		}
	}
	return false
}

func closesBracket(line string, i int) bool {
	return i < len(line) && line[i] == ']'
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
