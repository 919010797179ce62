package vocab

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	vocabLines = []string{
		"connect", "Connect", "enable", "enablement", "well-known", "well",
		"re-", "- my words", "-", "notes 123", "",
		"connect  [wiki](https://example.org/connect)",
		"enable ^abcdef", "connect [s1](#^123456) ^0a0a0a",
	}
	sentenceTokens = []string{
		"connect", "Connect", "connectivity", "enable", "enablement", "enabled",
		"well-known", "well", "re-connect", "-connect", "-", "--",
		"[", "]", "(", ")", "[connect]", "[[connect]]", "[[enable",
		"[connect](#^abcdef)", "[Enable](#^123456)", "[x](https://connect.io)",
		"^abcdef", "^0a0a0a", "connect]", "(connect)", "[ connect", "é", "_enable",
		"2connect", "connect.", "---",
	}
)

// counterIDs hands out distinct identifiers without a test to fail.
func counterIDs() IDGenerator {
	n := 0x100000
	return func() string {
		n++
		return fmt.Sprintf("%06x", n)
	}
}

// randomNote builds a note from the token tables above.
func randomNote(r *rand.Rand) string {
	var b strings.Builder
	for range r.IntN(4) + 1 {
		b.WriteString(vocabLines[r.IntN(len(vocabLines))])
		b.WriteString("\n")
	}
	b.WriteString("---")
	for range r.IntN(4) + 1 {
		b.WriteString("\n")
		words := make([]string, r.IntN(8))
		for i := range words {
			words[i] = sentenceTokens[r.IntN(len(sentenceTokens))]
		}
		sep := " "
		if r.IntN(4) == 0 {
			sep = ""
		}
		b.WriteString(strings.Join(words, sep))
	}
	return b.String()
}

func requireIdempotent(t *testing.T, doc string, policy MatchPolicy) {
	t.Helper()
	once := Process(doc, Options{Policy: policy, NewID: counterIDs()})
	twice := Process(once, Options{Policy: policy, NewID: counterIDs()})
	require.Equal(t, once, twice, "policy=%s doc=%q", policy, doc)
}

func TestProcess_IdempotentOnRandomNotes(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 2000 {
		doc := randomNote(r)
		requireIdempotent(t, doc, PolicyPrefix)
		requireIdempotent(t, doc, PolicyWholeWord)
	}
}

func FuzzProcess(f *testing.F) {
	seeds := []string{
		"connect\n---\nPress [ to connect.",
		"- my words\nconnect\n---\nre -connect now",
		"re-\nwell\n---\nre-connect well[connect](#^abcdef) well^abcdef",
		"connect\n---\n[[connect]] and [connect] and [ connect ] ^abcdef",
		"connect\nenablement\nenable\n---\nEnablement helps [x](https://connect.io) connect.",
		"connect\r\n---\r\nconnect now\r\n",
	}
	for _, s := range seeds {
		f.Add(s, false)
		f.Add(s, true)
	}
	f.Fuzz(func(t *testing.T, doc string, wholeWord bool) {
		policy := PolicyPrefix
		if wholeWord {
			policy = PolicyWholeWord
		}
		requireIdempotent(t, doc, policy)
	})
}
