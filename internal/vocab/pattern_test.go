package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spans(line string, occ []occurrence) []string {
	out := make([]string, len(occ))
	for i, o := range occ {
		out[i] = line[o.start:o.end] + "|" + line[o.end:o.suffixEnd]
	}
	return out
}

func TestCompileMatcher_EmptyKeywords(t *testing.T) {
	m := compileMatcher(nil, PolicyPrefix)
	assert.Nil(t, m)
	assert.Empty(t, m.find("anything at all"))
}

func TestMatcher_Prefix(t *testing.T) {
	m := compileMatcher([]string{"enable", "enablement", "connect"}, PolicyPrefix)
	require.NotNil(t, m)

	tests := []struct {
		name string
		line string
		want []string
	}{
		{"longest keyword first", "Enablement works", []string{"Enablement|"}},
		{"suffix stays outside", "connectivity and enabled", []string{"connect|ivity", "enable|d"}},
		{"inside a word", "reconnect", []string{}},
		{"after a digit", "2connect", []string{}},
		{"existing link", "[connect](#^abcdef) it", []string{}},
		{"link destination", "[see](https://connect.example) here", []string{}},
		{"right after a link", "[x](#^abcdef)connect", []string{}},
		{"bracketed text", "[connect] plain", []string{}},
		{"wiki link", "[[connect]] plain", []string{}},
		{"underscore", "_connect", []string{}},
		{"punctuation", "(connect), enable.", []string{"connect|", "enable|"}},
		{"unicode letter before", "éconnect", []string{}},
		{"stray bracket before a link", "Press [ to [connect](#^abcdef).", []string{}},
		{"stray bracket before a word", "Press [ to connect.", []string{"connect|"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spans(tt.line, m.find(tt.line)))
		})
	}
}

func TestMatcher_WholeWord(t *testing.T) {
	m := compileMatcher([]string{"connect", "well", "well-known"}, PolicyWholeWord)
	require.NotNil(t, m)

	tests := []struct {
		name string
		line string
		want []string
	}{
		{"exact", "we connect", []string{"connect|"}},
		{"longer word", "connectivity", []string{}},
		{"hyphenated keyword", "a well-known fact", []string{"well-known|"}},
		{"falls back to shorter keyword", "well-knownness", []string{"well|"}},
		{"end of line", "Connect", []string{"Connect|"}},
		{"before bracket", "connect]", []string{}},
		{"stray bracket before a link", "Press [ to [connect](#^abcdef).", []string{}},
		{"runs into a link", "well[connect](#^abcdef)", []string{}},
		{"runs into an identifier", "well^abcdef", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spans(tt.line, m.find(tt.line)))
		})
	}
}

func TestCompileMatcher_SkipsKeywordsWithoutLetters(t *testing.T) {
	assert.Nil(t, compileMatcher([]string{"-", "--"}, PolicyWholeWord))

	m := compileMatcher([]string{"-", "connect"}, PolicyWholeWord)
	require.NotNil(t, m)
	assert.Equal(t, []string{"connect|"}, spans("re - -connect", m.find("re - -connect")))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyPrefix, p)

	p, err = ParsePolicy("Whole-Word")
	require.NoError(t, err)
	assert.Equal(t, PolicyWholeWord, p)
	assert.Equal(t, "whole-word", p.String())

	_, err = ParsePolicy("fuzzy")
	assert.Error(t, err)
}
