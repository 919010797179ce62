package vocab

import "strings"

// Separator is the line that divides the vocabulary section from the
// sentence section.
const Separator = "---"

const separatorLine = "\n" + Separator + "\n"

// Document is a note split into its two sections.
type Document struct {
	Vocab     []string
	Sentences []string
}

// Eligible reports whether text contains a separator line.
func Eligible(text string) bool {
	if strings.Contains(text, separatorLine) {
		return true
	}
	return isCRLF(text) && strings.Contains(text, "\r\n"+Separator+"\r\n")
}

// Split cuts text on its first separator line. ok is false when there is
// none. Later separator lines belong to the sentence section.
func Split(text string) (doc Document, ok bool) {
	before, after, found := strings.Cut(text, separatorLine)
	if !found {
		return Document{}, false
	}
	return Document{
		Vocab:     strings.Split(before, "\n"),
		Sentences: strings.Split(after, "\n"),
	}, true
}

// Join serialises doc back to text.
func (d Document) Join() string {
	return strings.Join(d.Vocab, "\n") + separatorLine + strings.Join(d.Sentences, "\n")
}

// isCRLF reports whether every newline in text is part of a CRLF pair.
func isCRLF(text string) bool {
	n := strings.Count(text, "\n")
	return n > 0 && strings.Count(text, "\r\n") == n
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
