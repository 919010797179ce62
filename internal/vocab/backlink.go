package vocab

import (
	"strconv"
	"strings"
)

// composeBacklinks renders "[s1](#id1) [s2](#id2) ..." for every keyword
// with at least one sentence. Numbering follows first use.
func composeBacklinks(u *usage) map[string]string {
	out := make(map[string]string, len(u.ids))
	for kw, ids := range u.ids {
		links := make([]string, len(ids))
		for i, sid := range ids {
			links[i] = "[s" + strconv.Itoa(i+1) + "](#" + sid + ")"
		}
		out[kw] = strings.Join(links, " ")
	}
	return out
}
