package vocab

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

// IDLength is the number of hex digits in an anchor identifier.
const IDLength = 6

var (
	anchorRe = regexp.MustCompile(`\^[0-9a-f]{6}`)

	// trailingAnchorRe finds a sentence identifier at the end of a line.
	trailingAnchorRe = regexp.MustCompile(`\s+(\^[0-9a-f]{6})\s*$`)
)

// IDGenerator returns six lowercase hex digits. Process prefixes the caret.
type IDGenerator func() string

// RandomID is the default IDGenerator.
func RandomID() string {
	var b [IDLength / 2]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("vocab: crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(b[:])
}

// HasAnchor reports whether line carries an anchor identifier.
func HasAnchor(line string) bool {
	return anchorRe.MatchString(line)
}

// anchors hands out identifiers for one run and never repeats one that is
// already present in the document or was issued earlier in the run.
type anchors struct {
	gen  IDGenerator
	used map[string]bool
}

// maxIDAttempts bounds retries against a generator that keeps colliding.
const maxIDAttempts = 16

func newAnchors(gen IDGenerator, text string) *anchors {
	if gen == nil {
		gen = RandomID
	}
	a := &anchors{gen: gen, used: make(map[string]bool)}
	for _, id := range anchorRe.FindAllString(text, -1) {
		a.used[id] = true
	}
	return a
}

func (a *anchors) next() string {
	var id string
	for i := 0; i < maxIDAttempts; i++ {
		id = "^" + a.gen()
		if !a.used[id] {
			break
		}
	}
	a.used[id] = true
	return id
}
