package vocab

import "golang.org/x/text/cases"

// Fold returns the case-folded form of s, the key under which vocabulary
// words are matched.
func Fold(s string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Fold().String(s)
}
