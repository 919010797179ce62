package vocab

// padAnchors surrounds every line carrying an identifier with blank lines.
// Existing blank lines are kept and a gap is never doubled. The start and
// end of the section count as blank.
func padAnchors(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if !HasAnchor(line) {
			out = append(out, line)
			continue
		}
		prevBlank := i == 0 || isBlank(lines[i-1])
		lastBlank := len(out) == 0 || isBlank(out[len(out)-1])
		if !prevBlank && !lastBlank {
			out = append(out, "")
		}
		out = append(out, line)
		if i < len(lines)-1 && !isBlank(lines[i+1]) {
			out = append(out, "")
		}
	}
	return out
}
